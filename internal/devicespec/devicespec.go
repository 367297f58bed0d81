// Package devicespec holds a static device-id -> core-topology table:
// core counts, big/mid/small core groupings, and clock speeds for known
// mobile SoCs.
package devicespec

// Spec describes one known device's big.LITTLE core layout and clock
// speeds. Frequencies of 0 mean unknown, matching the original table's
// convention for devices that were never profiled.
type Spec struct {
	Alias        string
	ValidCores   []int
	SmallCores   []int
	MidCores     []int
	BigCores     []int
	SmallCoreGHz float64
	MidCoreGHz   float64
	BigCoreGHz   float64
}

var table = map[string]Spec{
	"3A021JEHN02756": {
		Alias:        "Pixel_7a",
		ValidCores:   []int{0, 1, 2, 3, 4, 5, 6, 7},
		SmallCores:   []int{0, 1, 2, 3},
		MidCores:     []int{4, 5},
		BigCores:     []int{6, 7},
		SmallCoreGHz: 1.803,
		MidCoreGHz:   2.348,
		BigCoreGHz:   2.85,
	},
	"9b034f1b": {
		Alias:      "OnePlus",
		ValidCores: []int{0, 1, 2, 5},
		SmallCores: []int{0, 1, 2},
		MidCores:   []int{3, 4, 5, 6},
		BigCores:   []int{7},
	},
	"RFCT80DAADN": {
		Alias:        "Samsung-new",
		ValidCores:   []int{0, 1, 2, 3, 4, 5, 6, 7},
		SmallCores:   []int{0, 1, 2, 3},
		MidCores:     []int{4, 5, 6},
		BigCores:     []int{7},
		SmallCoreGHz: 1.824,
		MidCoreGHz:   2.515,
		BigCoreGHz:   2.803,
	},
	"ZY22FLDDK7": {
		Alias:      "Motorola",
		ValidCores: []int{0, 1, 2, 3, 4, 5, 6, 7},
		SmallCores: []int{4, 5, 6, 7},
		BigCores:   []int{0, 1, 2, 3},
	},
	"ce0717178d7758b00b7e": {
		Alias:        "Samsung-old",
		ValidCores:   []int{0, 1, 2, 3, 4, 5},
		SmallCores:   []int{0, 1, 2, 3},
		BigCores:     []int{4, 5, 6, 7},
		SmallCoreGHz: 1.9008,
		BigCoreGHz:   2.3616,
	},
	"jetson": {
		Alias:      "Jetson Orin",
		ValidCores: []int{0, 1, 2, 3, 4, 5},
		SmallCores: []int{0, 1, 2, 3, 4, 5},
	},
}

// Lookup returns the Spec registered for deviceID, if any.
func Lookup(deviceID string) (Spec, bool) {
	spec, ok := table[deviceID]
	return spec, ok
}

// KnownDeviceIDs returns every device id this table has an entry for, for
// use in CLI usage text and validation-error messages.
func KnownDeviceIDs() []string {
	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	return ids
}
