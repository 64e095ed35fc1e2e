package model

// Operation is the kind of change a store observed for a key.
type Operation int32

const (
	// OperationUnset is the zero value and never produced by a well-behaved store.
	OperationUnset Operation = iota
	// OperationCreate marks the first write of a key.
	OperationCreate
	// OperationUpdate marks an overwrite of an existing key.
	OperationUpdate
	// OperationDelete marks the removal of a key.
	OperationDelete
)

func (o Operation) String() string {
	switch o {
	case OperationUnset:
		return "unset"
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Delta describes one observed change to a single bucket key between two invocations.
// OldValue is set for updates and deletes, NewValue for creates and updates.
type Delta struct {
	Key       string
	Ordinal   uint64
	Operation Operation
	OldValue  *BlockMeta
	NewValue  *BlockMeta
}
