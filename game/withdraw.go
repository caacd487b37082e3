package game

import (
	"regexp"
	"strings"
)

// Withdrawal methods form a closed set; anything else is rejected before any
// balance check runs against the details payload.
const (
	MethodPaypal = "paypal"
	MethodWire   = "wire"
	MethodCrypto = "crypto"
	MethodUPI    = "upi"
)

// WithdrawalDetails carries the method-specific payout fields. The whole
// struct is stored verbatim on the audit record for manual review; only the
// fields relevant to the chosen method are validated.
type WithdrawalDetails struct {
	Email   string `json:"email,omitempty"`
	Account string `json:"account,omitempty"`
	Routing string `json:"routing,omitempty"`
	Address string `json:"address,omitempty"`
	UpiID   string `json:"upiId,omitempty"`
}

var (
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reUPI   = regexp.MustCompile(`^[a-zA-Z0-9.\-]+@[a-zA-Z0-9.\-]+$`)
)

// cryptoAddressPrefix is the expected network prefix for payout wallets
// (TRON-network USDT).
const cryptoAddressPrefix = "T"

const cryptoAddressMinLen = 26

// ValidateWithdrawalDetails checks the payload shape for the chosen method.
func ValidateWithdrawalDetails(method string, d WithdrawalDetails) error {
	switch method {
	case MethodPaypal:
		if d.Email == "" || !reEmail.MatchString(d.Email) {
			return ErrPaypalEmail
		}
	case MethodWire:
		if strings.TrimSpace(d.Account) == "" || strings.TrimSpace(d.Routing) == "" {
			return ErrWireDetails
		}
	case MethodCrypto:
		if len(d.Address) < cryptoAddressMinLen || !strings.HasPrefix(d.Address, cryptoAddressPrefix) {
			return ErrCryptoAddress
		}
	case MethodUPI:
		if d.UpiID == "" || !reUPI.MatchString(d.UpiID) {
			return ErrUPIFormat
		}
	default:
		return ErrUnknownMethod
	}
	return nil
}
