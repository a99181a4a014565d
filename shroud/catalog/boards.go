package catalog

import "github.com/nathanworms/3dprints/shroud"

const headerPitch = 2.54 // 0.1in

func builtinBoards() []shroud.BoardSpec {
	return []shroud.BoardSpec{nodeMCUAmica(), nodeMCULoLinV3(), esp32DevKitCV4()}
}

// rowPins assigns names to a row's pins, index ascending.
func rowPins(pm map[string]shroud.Pin, row int, names ...string) {
	for i, name := range names {
		pm[name] = shroud.Pin{Row: row, Index: i}
	}
}

// nodeMCUAmica numbering with the USB connector to the left: row 0 counts
// A0 to VIN, row 1 counts D0 to SK2. Verify against your board before printing.
func nodeMCUAmica() shroud.BoardSpec {
	pm := make(map[string]shroud.Pin, 30)
	rowPins(pm, 0, "A0", "RSV1", "RSV2", "SD3", "SD2", "SD1", "CMD", "SD0",
		"CLK", "GND1", "3V3_1", "EN", "RST", "GND2", "VIN")
	rowPins(pm, 1, "D0", "D1", "D2", "D3", "D4", "D5", "D6", "D7",
		"D8", "RX", "TX", "GND3", "3V3_2", "SK1", "SK2")
	return shroud.BoardSpec{
		Name:       "NodeMCU_Amica",
		PinsPerRow: 15,
		PinPitch:   headerPitch,
		RowSpacing: 22.86,
		PinLength:  6,
		RowSign:    shroud.DefaultRowSign,
		PinMap:     pm,
	}
}

// nodeMCULoLinV3 is the wide LoLin variant with 1.1in between rows.
func nodeMCULoLinV3() shroud.BoardSpec {
	pm := make(map[string]shroud.Pin, 30)
	rowPins(pm, 0, "A0", "RSV1", "RSV2", "SD3", "SD2", "SD1", "CMD", "SD0",
		"CLK", "GND1", "3V3_1", "EN", "RST", "GND2", "VIN")
	rowPins(pm, 1, "D0", "D1", "D2", "D3", "D4", "3V3_2", "GND3", "D5",
		"D6", "D7", "D8", "RX", "TX", "GND4", "3V3_3")
	return shroud.BoardSpec{
		Name:       "NodeMCU_LoLin_V3",
		PinsPerRow: 15,
		PinPitch:   headerPitch,
		RowSpacing: 27.94,
		PinLength:  6,
		RowSign:    shroud.DefaultRowSign,
		PinMap:     pm,
	}
}

// esp32DevKitCV4 numbering with the USB connector at the bottom, counting away from it.
func esp32DevKitCV4() shroud.BoardSpec {
	pm := make(map[string]shroud.Pin, 38)
	rowPins(pm, 0, "5V", "CMD", "SD3", "SD2", "IO13", "GND1", "IO12", "IO14",
		"IO27", "IO26", "IO25", "IO33", "IO32", "IO35", "IO34", "VN", "VP", "EN", "3V3")
	rowPins(pm, 1, "CLK", "SD0", "SD1", "IO15", "IO2", "IO0", "IO4", "IO16",
		"IO17", "IO5", "IO18", "IO19", "GND2", "IO21", "RXD0", "TXD0", "IO22", "IO23", "GND3")
	return shroud.BoardSpec{
		Name:       "ESP32_DevKitC_V4",
		PinsPerRow: 19,
		PinPitch:   headerPitch,
		RowSpacing: 25.4,
		PinLength:  6,
		RowSign:    shroud.DefaultRowSign,
		PinMap:     pm,
	}
}
