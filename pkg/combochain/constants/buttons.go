package constants

import (
	"fmt"
	"strings"
)

// VirtualButton is a device independent button identifier.
// Keyboard keys, controller buttons, hats and axes all map onto these.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonX
	VirtualButtonY
	VirtualButtonL1
	VirtualButtonL2
	VirtualButtonR1
	VirtualButtonR2
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
)

var buttonNames = map[VirtualButton]string{
	VirtualButtonUnassigned: "Unassigned",
	VirtualButtonUp:         "Up",
	VirtualButtonDown:       "Down",
	VirtualButtonLeft:       "Left",
	VirtualButtonRight:      "Right",
	VirtualButtonA:          "A",
	VirtualButtonB:          "B",
	VirtualButtonX:          "X",
	VirtualButtonY:          "Y",
	VirtualButtonL1:         "L1",
	VirtualButtonL2:         "L2",
	VirtualButtonR1:         "R1",
	VirtualButtonR2:         "R2",
	VirtualButtonStart:      "Start",
	VirtualButtonSelect:     "Select",
	VirtualButtonMenu:       "Menu",
}

// GetName returns the display name of the button
func (vb VirtualButton) GetName() string {
	if name, ok := buttonNames[vb]; ok {
		return name
	}
	return fmt.Sprintf("VirtualButton(%d)", int(vb))
}

func (vb VirtualButton) String() string {
	return vb.GetName()
}

// ParseVirtualButton resolves a case-insensitive button name such as "up", "a" or "r1".
// "L" and "R" are accepted as aliases of L1 and R1.
func ParseVirtualButton(name string) (VirtualButton, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch normalized {
	case "l":
		return VirtualButtonL1, nil
	case "r":
		return VirtualButtonR1, nil
	}

	for vb, n := range buttonNames {
		if vb == VirtualButtonUnassigned {
			continue
		}
		if strings.ToLower(n) == normalized {
			return vb, nil
		}
	}

	return VirtualButtonUnassigned, fmt.Errorf("unknown virtual button %q", name)
}

// AllButtons returns every assignable button in declaration order
func AllButtons() []VirtualButton {
	buttons := make([]VirtualButton, 0, len(buttonNames)-1)
	for vb := VirtualButtonUp; vb <= VirtualButtonMenu; vb++ {
		buttons = append(buttons, vb)
	}
	return buttons
}
