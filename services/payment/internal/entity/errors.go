package entity

import "errors"

var (
	// ErrOrderNotFound signals a stale or forged confirmation; it must be
	// rejected, never silently accepted.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderAlreadyProcessed means the order already reached a terminal
	// failed/cancelled state and cannot be charged.
	ErrOrderAlreadyProcessed = errors.New("order already processed")

	// ErrInsufficientBalance rejects a direct balance spend before any
	// mutation happens.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvoiceCreation covers provider failures after the order insert;
	// the half-created order is rolled back before this is returned.
	ErrInvoiceCreation = errors.New("could not start payment, try again")
)
