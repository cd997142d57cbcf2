package model

// TransferRequest is a transient command moving funds between two
// wallets. It is never cached or persisted client-side; executing it
// produces ledger effects on both wallets server-side.
//
// Amount is denominated in the source wallet's currency. ReceivedAmount
// is denominated in the destination wallet's currency and is only
// meaningful (and required) when the two currencies differ; zero means
// unset.
type TransferRequest struct {
	FromWalletID   string
	ToWalletID     string
	Description    string
	Notes          string
	Amount         float64
	ReceivedAmount float64
}
