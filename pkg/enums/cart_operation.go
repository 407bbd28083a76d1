package enums

// CartOperation labels cart mutations for metrics and logs.
type CartOperation string

const (
	CartOperationAdd      CartOperation = "add"
	CartOperationRemove   CartOperation = "remove"
	CartOperationClear    CartOperation = "clear"
	CartOperationCheckout CartOperation = "checkout"
)

// String implements fmt.Stringer.
func (o CartOperation) String() string {
	return string(o)
}
