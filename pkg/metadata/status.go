package metadata

import "fmt"

// ArchiveStatus is the lifecycle state of an archived inventory record.
type ArchiveStatus string

const (
	StatusArchived ArchiveStatus = "Archived"
	StatusInactive ArchiveStatus = "Inactive"
	StatusRestored ArchiveStatus = "Restored"
)

func NewArchiveStatus(value string) (ArchiveStatus, error) {
	status := ArchiveStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid archive status: %s", value)
	}
	return status, nil
}

func (s ArchiveStatus) isValid() bool {
	switch s {
	case StatusArchived, StatusInactive, StatusRestored:
		return true
	default:
		return false
	}
}

// ReturnStatus tracks a POS return request. Approved and rejected are terminal.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnApproved ReturnStatus = "approved"
	ReturnRejected ReturnStatus = "rejected"
)

func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnApproved || s == ReturnRejected
}
