package leads

import "errors"

// ErrMissingFields is returned when a required submission field is absent
var ErrMissingFields = errors.New("name, email, and phone are required")
