package enum

// PaymentMethod is the payment label recorded on a sale. It is not a
// processed transaction; no gateway integration happens here.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentYape     PaymentMethod = "yape"
	PaymentPlin     PaymentMethod = "plin"
)

// IsValid reports whether the payment method belongs to the closed set.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentYape, PaymentPlin:
		return true
	}
	return false
}

func (p PaymentMethod) String() string {
	return string(p)
}
