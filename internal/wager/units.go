package wager

import (
	"fmt"
	"strings"
)

const weiPerEther = 1_000_000_000_000_000_000

// FormatWei renders a wei amount in ether, e.g. "0.05 ETH".
func FormatWei(wei int64) string {
	sign := ""
	u := uint64(wei)
	if wei < 0 {
		sign = "-"
		u = uint64(-(wei + 1)) + 1
	}

	whole := u / weiPerEther
	frac := u % weiPerEther
	if frac == 0 {
		return fmt.Sprintf("%s%d ETH", sign, whole)
	}
	digits := strings.TrimRight(fmt.Sprintf("%018d", frac), "0")
	return fmt.Sprintf("%s%d.%s ETH", sign, whole, digits)
}

// TxStatus is the progress of a ledger call issued by the UI.
type TxStatus int

const (
	TxNone TxStatus = iota
	TxPending
	TxCompleted
	TxFailed
)

// String returns the label shown on the HUD.
func (s TxStatus) String() string {
	switch s {
	case TxPending:
		return "Pending"
	case TxCompleted:
		return "Completed"
	case TxFailed:
		return "Failed"
	default:
		return ""
	}
}
