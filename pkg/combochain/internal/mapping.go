package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

const MappingPathEnvVar = "INPUT_MAPPING_PATH"

const defaultAxisThreshold int16 = 16000

var inputMappingBytes []byte

func SetInputMappingBytes(data []byte) {
	inputMappingBytes = data
}

type Source int

const (
	SourceKeyboard Source = iota
	SourceController
	SourceJoystick
	SourceHatSwitch
)

func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceController:
		return "controller"
	case SourceJoystick:
		return "joystick"
	case SourceHatSwitch:
		return "hat"
	default:
		return "unknown"
	}
}

// Event is a press or release of a virtual button
type Event struct {
	Button  constants.VirtualButton
	Pressed bool
	Source  Source
	RawCode int
}

func (e *Event) IsActionPressed(id constants.VirtualButton) bool {
	return e.Button == id && e.Pressed
}

func (e *Event) IsActionReleased(id constants.VirtualButton) bool {
	return e.Button == id && !e.Pressed
}

type JoystickAxisMapping struct {
	PositiveButton constants.VirtualButton
	NegativeButton constants.VirtualButton
	Threshold      int16
}

type InputMapping struct {
	KeyboardMap map[sdl.Keycode]constants.VirtualButton

	ControllerButtonMap map[sdl.GameControllerButton]constants.VirtualButton

	JoystickAxisMap map[uint8]JoystickAxisMapping

	JoystickButtonMap map[uint8]constants.VirtualButton

	JoystickHatMap map[uint8]constants.VirtualButton
}

type axisFile struct {
	PositiveButton int   `json:"positive_button"`
	NegativeButton int   `json:"negative_button"`
	Threshold      int16 `json:"threshold"`
}

// mappingFile is the JSON form. Keys are SDL codes, values are VirtualButton values.
type mappingFile struct {
	KeyboardMap         map[int]int      `json:"keyboard_map"`
	ControllerButtonMap map[int]int      `json:"controller_button_map"`
	JoystickAxisMap     map[int]axisFile `json:"joystick_axis_map"`
	JoystickButtonMap   map[int]int      `json:"joystick_button_map"`
	JoystickHatMap      map[int]int      `json:"joystick_hat_map"`
}

func DefaultInputMapping() *InputMapping {
	return &InputMapping{
		KeyboardMap: map[sdl.Keycode]constants.VirtualButton{
			sdl.K_UP:        constants.VirtualButtonUp,
			sdl.K_DOWN:      constants.VirtualButtonDown,
			sdl.K_LEFT:      constants.VirtualButtonLeft,
			sdl.K_RIGHT:     constants.VirtualButtonRight,
			sdl.K_a:         constants.VirtualButtonA,
			sdl.K_b:         constants.VirtualButtonB,
			sdl.K_x:         constants.VirtualButtonX,
			sdl.K_y:         constants.VirtualButtonY,
			sdl.K_l:         constants.VirtualButtonL1,
			sdl.K_SEMICOLON: constants.VirtualButtonL2,
			sdl.K_r:         constants.VirtualButtonR1,
			sdl.K_t:         constants.VirtualButtonR2,
			sdl.K_RETURN:    constants.VirtualButtonStart,
			sdl.K_SPACE:     constants.VirtualButtonSelect,
			sdl.K_h:         constants.VirtualButtonMenu,
		},
		ControllerButtonMap: map[sdl.GameControllerButton]constants.VirtualButton{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.VirtualButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.VirtualButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.VirtualButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.VirtualButtonRight,
			sdl.CONTROLLER_BUTTON_A:             constants.VirtualButtonB,
			sdl.CONTROLLER_BUTTON_B:             constants.VirtualButtonA,
			sdl.CONTROLLER_BUTTON_X:             constants.VirtualButtonY,
			sdl.CONTROLLER_BUTTON_Y:             constants.VirtualButtonX,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.VirtualButtonL1,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.VirtualButtonR1,
			sdl.CONTROLLER_BUTTON_START:         constants.VirtualButtonStart,
			sdl.CONTROLLER_BUTTON_BACK:          constants.VirtualButtonSelect,
			sdl.CONTROLLER_BUTTON_GUIDE:         constants.VirtualButtonMenu,
		},
		// Left stick, so motion inputs can be entered on the stick as well as the d-pad
		JoystickAxisMap: map[uint8]JoystickAxisMapping{
			uint8(sdl.CONTROLLER_AXIS_LEFTX): {
				PositiveButton: constants.VirtualButtonRight,
				NegativeButton: constants.VirtualButtonLeft,
				Threshold:      defaultAxisThreshold,
			},
			uint8(sdl.CONTROLLER_AXIS_LEFTY): {
				PositiveButton: constants.VirtualButtonDown,
				NegativeButton: constants.VirtualButtonUp,
				Threshold:      defaultAxisThreshold,
			},
		},
		JoystickButtonMap: map[uint8]constants.VirtualButton{},
		JoystickHatMap: map[uint8]constants.VirtualButton{
			sdl.HAT_UP:    constants.VirtualButtonUp,
			sdl.HAT_DOWN:  constants.VirtualButtonDown,
			sdl.HAT_LEFT:  constants.VirtualButtonLeft,
			sdl.HAT_RIGHT: constants.VirtualButtonRight,
		},
	}
}

// GetInputMapping returns the mapping from embedded bytes if set, then from path,
// then from the environment variable, otherwise the default mapping
func GetInputMapping(path string) *InputMapping {
	logger := logging.GetInternalLogger()

	if len(inputMappingBytes) > 0 {
		mapping, err := LoadInputMappingFromBytes(inputMappingBytes)
		if err == nil {
			logger.Info("Loaded custom input mapping from embedded bytes")
			return mapping
		}
		logger.Warn("Failed to load custom input mapping from bytes, trying file path", "error", err)
	}

	for _, candidate := range []string{path, os.Getenv(MappingPathEnvVar)} {
		if candidate == "" {
			continue
		}
		mapping, err := LoadInputMappingFromJSON(candidate)
		if err == nil {
			logger.Info("Loaded custom input mapping", "path", candidate)
			return mapping
		}
		logger.Warn("Failed to load custom input mapping", "path", candidate, "error", err)
	}

	return DefaultInputMapping()
}

func LoadInputMappingFromJSON(filePath string) (*InputMapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return LoadInputMappingFromBytes(data)
}

func LoadInputMappingFromBytes(data []byte) (*InputMapping, error) {
	var file mappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	mapping := &InputMapping{
		KeyboardMap:         make(map[sdl.Keycode]constants.VirtualButton, len(file.KeyboardMap)),
		ControllerButtonMap: make(map[sdl.GameControllerButton]constants.VirtualButton, len(file.ControllerButtonMap)),
		JoystickAxisMap:     make(map[uint8]JoystickAxisMapping, len(file.JoystickAxisMap)),
		JoystickButtonMap:   make(map[uint8]constants.VirtualButton, len(file.JoystickButtonMap)),
		JoystickHatMap:      make(map[uint8]constants.VirtualButton, len(file.JoystickHatMap)),
	}

	for code, button := range file.KeyboardMap {
		mapping.KeyboardMap[sdl.Keycode(code)] = constants.VirtualButton(button)
	}
	for code, button := range file.ControllerButtonMap {
		mapping.ControllerButtonMap[sdl.GameControllerButton(code)] = constants.VirtualButton(button)
	}
	for axis, am := range file.JoystickAxisMap {
		threshold := am.Threshold
		if threshold <= 0 {
			threshold = defaultAxisThreshold
		}
		mapping.JoystickAxisMap[uint8(axis)] = JoystickAxisMapping{
			PositiveButton: constants.VirtualButton(am.PositiveButton),
			NegativeButton: constants.VirtualButton(am.NegativeButton),
			Threshold:      threshold,
		}
	}
	for code, button := range file.JoystickButtonMap {
		mapping.JoystickButtonMap[uint8(code)] = constants.VirtualButton(button)
	}
	for hat, button := range file.JoystickHatMap {
		mapping.JoystickHatMap[uint8(hat)] = constants.VirtualButton(button)
	}

	return mapping, nil
}

func (im *InputMapping) ToJSON() ([]byte, error) {
	file := mappingFile{
		KeyboardMap:         make(map[int]int, len(im.KeyboardMap)),
		ControllerButtonMap: make(map[int]int, len(im.ControllerButtonMap)),
		JoystickAxisMap:     make(map[int]axisFile, len(im.JoystickAxisMap)),
		JoystickButtonMap:   make(map[int]int, len(im.JoystickButtonMap)),
		JoystickHatMap:      make(map[int]int, len(im.JoystickHatMap)),
	}

	for code, button := range im.KeyboardMap {
		file.KeyboardMap[int(code)] = int(button)
	}
	for code, button := range im.ControllerButtonMap {
		file.ControllerButtonMap[int(code)] = int(button)
	}
	for axis, am := range im.JoystickAxisMap {
		file.JoystickAxisMap[int(axis)] = axisFile{
			PositiveButton: int(am.PositiveButton),
			NegativeButton: int(am.NegativeButton),
			Threshold:      am.Threshold,
		}
	}
	for code, button := range im.JoystickButtonMap {
		file.JoystickButtonMap[int(code)] = int(button)
	}
	for hat, button := range im.JoystickHatMap {
		file.JoystickHatMap[int(hat)] = int(button)
	}

	return json.MarshalIndent(file, "", "  ")
}

func (im *InputMapping) SaveToJSON(filePath string) error {
	data, err := im.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal mapping to JSON: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
