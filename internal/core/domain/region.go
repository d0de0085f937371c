package domain

// Districts lists the 25 administrative districts of Sri Lanka offered when
// reporting an issue. The registry stores whatever text it is given; input
// layers validate against this table.
var Districts = []string{
	"Ampara",
	"Anuradhapura",
	"Badulla",
	"Batticaloa",
	"Colombo",
	"Galle",
	"Gampaha",
	"Hambantota",
	"Jaffna",
	"Kalutara",
	"Kandy",
	"Kegalle",
	"Kilinochchi",
	"Kurunegala",
	"Mannar",
	"Matale",
	"Matara",
	"Moneragala",
	"Mullaitivu",
	"Nuwara Eliya",
	"Polonnaruwa",
	"Puttalam",
	"Ratnapura",
	"Trincomalee",
	"Vavuniya",
}

// Provinces lists the provinces offered when reporting an issue.
var Provinces = []string{
	"Eastern",
	"North Central",
	"North Western",
	"Northern",
	"Sabaragamuwa",
	"Southern",
	"Uva",
	"Western",
}

var (
	districtSet = toSet(Districts)
	provinceSet = toSet(Provinces)
)

// IsDistrict reports whether s is one of Districts.
func IsDistrict(s string) bool {
	_, ok := districtSet[s]
	return ok
}

// IsProvince reports whether s is one of Provinces.
func IsProvince(s string) bool {
	_, ok := provinceSet[s]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
