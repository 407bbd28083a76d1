package enums

// FlashLevel classifies a one-shot user notice attached to a response.
type FlashLevel string

const (
	FlashLevelSuccess FlashLevel = "success"
	FlashLevelInfo    FlashLevel = "info"
	FlashLevelWarning FlashLevel = "warning"
	FlashLevelError   FlashLevel = "error"
)

// String implements fmt.Stringer.
func (l FlashLevel) String() string {
	return string(l)
}
