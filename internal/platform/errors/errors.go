package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// Connection pipeline failures, one per step class.
	ErrSelectionCancelled     = errors.New("device selection cancelled")
	ErrLinkFailed             = errors.New("link establishment failed")
	ErrServiceNotFound        = errors.New("heart rate service not found")
	ErrCharacteristicNotFound = errors.New("heart rate measurement characteristic not found")
	ErrSubscribeRejected      = errors.New("notification subscription rejected")

	ErrMonitorActive        = errors.New("monitor already active")
	ErrMalformedMeasurement = errors.New("malformed heart rate measurement")
	ErrNoContainer          = errors.New("chart container missing")
	ErrEmptyGuide           = errors.New("guide has no pages")
)
