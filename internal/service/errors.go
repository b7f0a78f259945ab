package service

// StorageError marks a persistence failure after successful validation:
// the data was valid but not saved, and the caller must resubmit. The
// rate-limit token already consumed is not refunded.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "failed to persist batch (data was valid but not saved): " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
