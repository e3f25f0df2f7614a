package order

// Status is updated outside this service; checkout only ever writes Pending.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus maps a stored value to a Status, reading unknown values as Pending.
func ParseStatus(v string) Status {
	if s := Status(v); s.Valid() {
		return s
	}
	return StatusPending
}
