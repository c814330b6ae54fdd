// Package shipping computes the flat delivery fee for a destination state.
// The rates follow Speed Post tariffs for a 201-500g parcel, in minor
// currency units.
package shipping

// DefaultFee is charged when a state is missing from the rate table, so
// that the fee is defined even if the UI enumeration gains a state before
// the table does.
const DefaultFee int64 = 80

// States lists every destination the store ships to.
var States = []string{
	"Andaman & Nicobar Islands",
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chandigarh",
	"Chhattisgarh",
	"Dadra & Nagar Haveli and Daman & Diu",
	"NCT of Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jammu & Kashmir",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Ladakh",
	"Lakshadweep",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Puducherry",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
}

var rates = map[string]int64{
	// Local, up to 200 km.
	"Telangana": 50,

	// 201-1000 km.
	"Andhra Pradesh":                       60,
	"Karnataka":                            60,
	"Tamil Nadu":                           60,
	"Kerala":                               60,
	"Maharashtra":                          60,
	"Goa":                                  60,
	"Gujarat":                              60,
	"Madhya Pradesh":                       60,
	"Chhattisgarh":                         60,
	"Odisha":                               60,
	"Dadra & Nagar Haveli and Daman & Diu": 60,
	"Lakshadweep":                          60,
	"Puducherry":                           60,

	// 1001-2000 km.
	"West Bengal":   80,
	"Bihar":         80,
	"Jharkhand":     80,
	"Uttar Pradesh": 80,
	"Uttarakhand":   80,
	"Rajasthan":     80,
	"Haryana":       80,
	"NCT of Delhi":  80,
	"Punjab":        80,
	"Chandigarh":    80,

	// Above 2000 km.
	"Himachal Pradesh":          90,
	"Jammu & Kashmir":           90,
	"Ladakh":                    90,
	"Assam":                     90,
	"Arunachal Pradesh":         90,
	"Manipur":                   90,
	"Meghalaya":                 90,
	"Mizoram":                   90,
	"Nagaland":                  90,
	"Tripura":                   90,
	"Sikkim":                    90,
	"Andaman & Nicobar Islands": 90,
}

// Cost returns the shipping fee for the given state. It is total over all
// strings: an unrecognized state gets DefaultFee rather than an error.
func Cost(state string) int64 {
	if fee, ok := rates[state]; ok {
		return fee
	}
	return DefaultFee
}

// ValidState reports whether the state is one the store ships to.
func ValidState(state string) bool {
	for _, s := range States {
		if s == state {
			return true
		}
	}
	return false
}
