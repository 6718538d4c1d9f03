package stage

// Health summarizes whether a stage's inputs are in place.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy constructs an unhealthy Health record with context detail.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}

// Status renders the readiness as a short word for tables.
func (h Health) Status() string {
	if h.Ready {
		return "ready"
	}
	return "blocked"
}
