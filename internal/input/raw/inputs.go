package raw

import "strings"

// Well-known input identifiers emitted by the bundled source adapters.
// Binding tables refer to inputs by these strings; host drivers may add
// their own identifiers as long as they stay stable across a session.
const (
	// Pointer buttons.
	InputMouseLeft   = "MouseLeft"
	InputMouseRight  = "MouseRight"
	InputMouseMiddle = "MouseMiddle"

	// Pointer-derived classifications. Click fires on a sub-threshold
	// release; Drag is a stream spanning threshold-crossing to release.
	InputMouseLeftClick   = "MouseLeftClick"
	InputMouseRightClick  = "MouseRightClick"
	InputMouseMiddleClick = "MouseMiddleClick"
	InputMouseLeftDrag    = "MouseLeftDrag"
	InputMouseRightDrag   = "MouseRightDrag"
	InputMouseMiddleDrag  = "MouseMiddleDrag"

	// Hover movement with no button held.
	InputPointerMove = "PointerMove"

	// Wheel scroll steps.
	InputWheel = "Wheel"

	// Touch classifications, decided at touch end.
	InputTap        = "Tap"
	InputDoubleTap  = "DoubleTap"
	InputLongPress  = "LongPress"
	InputSwipeLeft  = "SwipeLeft"
	InputSwipeRight = "SwipeRight"
	InputSwipeUp    = "SwipeUp"
	InputSwipeDown  = "SwipeDown"

	// Two-finger streams.
	InputPinch  = "Pinch"
	InputRotate = "Rotate"

	// Standard-layout gamepad controls.
	InputGamepadA           = "GamepadA"
	InputGamepadB           = "GamepadB"
	InputGamepadX           = "GamepadX"
	InputGamepadY           = "GamepadY"
	InputGamepadLeftStickX  = "GamepadLeftX"
	InputGamepadLeftStickY  = "GamepadLeftY"
	InputGamepadRightStickX = "GamepadRightX"
	InputGamepadRightStickY = "GamepadRightY"

	// VR controller controls, hand-qualified via VRInput.
	InputVRLeftTrigger  = "VRLeftTrigger"
	InputVRRightTrigger = "VRRightTrigger"
	InputVRLeftGrip     = "VRLeftGrip"
	InputVRRightGrip    = "VRRightGrip"
	InputVRLeftPose     = "VRLeftPose"
	InputVRRightPose    = "VRRightPose"
)

// VRInput derives the hand-qualified VR input identifier, e.g.
// VRInput("left", "Trigger") returns "VRLeftTrigger".
func VRInput(hand, control string) string {
	if hand != "" {
		hand = strings.ToUpper(hand[:1]) + hand[1:]
	}
	return "VR" + hand + control
}
