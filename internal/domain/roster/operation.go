package roster

type Verb string

const (
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

type NamePayload struct {
	Name string `json:"name"`
}

// Operation is one independent remote call. PlaceholderID is local metadata
// for create operations and is never part of the payload.
type Operation struct {
	Verb          Verb
	Path          string
	Payload       *NamePayload
	PlaceholderID string
}

// SendResult carries what a successful send learned; CreatedID is set for creates.
type SendResult struct {
	CreatedID string
}

type OperationOutcome struct {
	Operation Operation
	Succeeded bool
	CreatedID string
	Err       error
}

type BatchOutcome struct {
	AllSucceeded bool
	Outcomes     []OperationOutcome
}

// CreatedIDs maps placeholder ids to remote ids for every successful create.
func (b BatchOutcome) CreatedIDs() map[string]string {
	out := make(map[string]string)
	for _, o := range b.Outcomes {
		if o.Succeeded && o.Operation.Verb == VerbCreate && o.Operation.PlaceholderID != "" && o.CreatedID != "" {
			out[o.Operation.PlaceholderID] = o.CreatedID
		}
	}
	return out
}

func (b BatchOutcome) Failed() []OperationOutcome {
	var out []OperationOutcome
	for _, o := range b.Outcomes {
		if !o.Succeeded {
			out = append(out, o)
		}
	}
	return out
}
