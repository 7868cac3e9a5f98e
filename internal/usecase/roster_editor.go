package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-manager/internal/domain/roster"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
)

type EditorState string

const (
	StateEditing        EditorState = "editing"
	StateConfirmPending EditorState = "confirm_pending"
	StateSaving         EditorState = "saving"
	StateCommitted      EditorState = "committed"
	StateStale          EditorState = "stale"
)

var (
	ErrSaveDisabled        = errors.New("save is disabled")
	ErrSaveInProgress      = errors.New("save already in progress")
	ErrConfirmationPending = errors.New("confirmation pending")
	ErrNoConfirmation      = errors.New("no save awaiting confirmation")
	ErrStaleSession        = errors.New("roster is stale, reload required")
	ErrMissingCreatedID    = errors.New("create succeeded without a remote id")
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

const (
	MessageSaveSucceeded = "All changes succeeded"
	MessageSaveFailed    = "Please reload page"
)

type Notification struct {
	Kind    NotificationKind
	Message string
}

// Notifier is a fire-and-forget sink for user-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LeagueLoader reads the authoritative league and roster.
type LeagueLoader interface {
	LoadLeague(ctx context.Context, leagueID string) (roster.Snapshot, error)
}

type RosterExecutor interface {
	Execute(ctx context.Context, ops []roster.Operation) roster.BatchOutcome
}

type RosterEditorDeps struct {
	Loader         LeagueLoader
	Executor       RosterExecutor
	Notifier       Notifier
	PlaceholderIDs idgen.Generator
	Logger         *logging.Logger
}

type pendingSave struct {
	snapshot roster.Snapshot
	changes  roster.ChangeSet
}

// RosterEditor is one league edit session. Edits go to a working copy; the
// baseline only changes when a whole batch succeeds or on Reload.
type RosterEditor struct {
	deps     RosterEditorDeps
	leagueID string

	mu       sync.Mutex
	state    EditorState
	baseline roster.Snapshot
	edited   roster.Snapshot
	pending  *pendingSave
	last     *Notification
}

func OpenRosterEditor(ctx context.Context, leagueID string, deps RosterEditorDeps) (*RosterEditor, error) {
	if deps.Loader == nil || deps.Executor == nil {
		return nil, fmt.Errorf("%w: roster editor needs a loader and an executor", ErrInvalidInput)
	}
	if deps.PlaceholderIDs == nil {
		deps.PlaceholderIDs = idgen.NewUUIDGenerator(roster.PlaceholderPrefix)
	}
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}

	e := &RosterEditor{deps: deps, leagueID: leagueID}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}

	return e, nil
}

// Reload replaces both copies with the authoritative roster and returns to Editing.
func (e *RosterEditor) Reload(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateSaving {
		e.mu.Unlock()
		return ErrSaveInProgress
	}
	e.mu.Unlock()

	snap, err := e.deps.Loader.LoadLeague(ctx, e.leagueID)
	if err != nil {
		return fmt.Errorf("load league %s: %w", e.leagueID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSaving {
		return ErrSaveInProgress
	}
	e.baseline = snap.Clone()
	e.edited = snap.Clone()
	e.pending = nil
	e.state = StateEditing

	return nil
}

func (e *RosterEditor) RenameTeam(index int, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginEdit(); err != nil {
		return err
	}
	return e.edited.RenameTeam(index, name)
}

func (e *RosterEditor) DeleteTeam(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginEdit(); err != nil {
		return err
	}
	_, err := e.edited.DeleteTeam(index)
	return err
}

// AddPlaceholderTeam appends an unnamed team with a local id.
func (e *RosterEditor) AddPlaceholderTeam() (roster.Team, error) {
	placeholderID, err := e.deps.PlaceholderIDs.NewID()
	if err != nil {
		return roster.Team{}, fmt.Errorf("generate placeholder id: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginEdit(); err != nil {
		return roster.Team{}, err
	}
	return e.edited.AddPlaceholder(placeholderID)
}

func (e *RosterEditor) RenameLeague(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginEdit(); err != nil {
		return err
	}
	e.edited.Name = name
	return nil
}

// RequestSave freezes the working copy for confirmation and returns what would change.
func (e *RosterEditor) RequestSave() (roster.ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateSaving:
		return roster.ChangeSet{}, ErrSaveInProgress
	case StateConfirmPending:
		return roster.ChangeSet{}, ErrConfirmationPending
	case StateStale:
		return roster.ChangeSet{}, ErrStaleSession
	}

	if err := roster.Validate(e.edited); err != nil {
		return roster.ChangeSet{}, fmt.Errorf("%w: %w", ErrSaveDisabled, err)
	}
	changes := roster.Diff(e.baseline, e.edited)
	if changes.IsEmpty() {
		return roster.ChangeSet{}, fmt.Errorf("%w: nothing changed", ErrSaveDisabled)
	}

	e.pending = &pendingSave{snapshot: e.edited.Clone(), changes: changes}
	e.state = StateConfirmPending

	return changes, nil
}

func (e *RosterEditor) CancelConfirmation() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateConfirmPending {
		return ErrNoConfirmation
	}
	e.pending = nil
	e.state = StateEditing

	return nil
}

// ConfirmSave runs the confirmed batch. On full success the confirmed snapshot
// becomes the baseline; on any failure the baseline is kept and the session goes Stale.
func (e *RosterEditor) ConfirmSave(ctx context.Context) (roster.BatchOutcome, error) {
	e.mu.Lock()
	if e.state != StateConfirmPending || e.pending == nil {
		e.mu.Unlock()
		return roster.BatchOutcome{}, ErrNoConfirmation
	}
	pending := e.pending
	e.pending = nil
	e.state = StateSaving
	e.mu.Unlock()

	ops := PlanRosterOperations(e.leagueID, pending.changes)
	outcome := requireCreatedIDs(e.deps.Executor.Execute(ctx, ops))

	var note Notification
	e.mu.Lock()
	if outcome.AllSucceeded {
		created := outcome.CreatedIDs()
		committed := pending.snapshot.Clone()
		committed.ResolvePlaceholders(created)
		e.baseline = committed
		e.edited.ResolvePlaceholders(created)
		e.state = StateCommitted
		note = Notification{Kind: NotificationSuccess, Message: MessageSaveSucceeded}
	} else {
		e.state = StateStale
		note = Notification{Kind: NotificationError, Message: MessageSaveFailed}
	}
	e.last = &note
	e.mu.Unlock()

	e.deps.Logger.InfoContext(ctx, "roster save finished",
		"league_id", e.leagueID,
		"operations", len(ops),
		"all_succeeded", outcome.AllSucceeded,
	)
	if e.deps.Notifier != nil {
		e.deps.Notifier.Notify(ctx, note)
	}

	return outcome, nil
}

// requireCreatedIDs fails creates that reported no remote id. Committing them
// would leave placeholders in the baseline, which the next diff resends.
func requireCreatedIDs(outcome roster.BatchOutcome) roster.BatchOutcome {
	for i, o := range outcome.Outcomes {
		if o.Succeeded && o.Operation.Verb == roster.VerbCreate && o.CreatedID == "" {
			outcome.Outcomes[i].Succeeded = false
			outcome.Outcomes[i].Err = ErrMissingCreatedID
			outcome.AllSucceeded = false
		}
	}
	return outcome
}

func (e *RosterEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *RosterEditor) Edited() roster.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.edited.Clone()
}

func (e *RosterEditor) Baseline() roster.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseline.Clone()
}

// PendingChanges is the change set shown while a confirmation is pending.
func (e *RosterEditor) PendingChanges() (roster.ChangeSet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return roster.ChangeSet{}, false
	}
	return e.pending.changes, true
}

// SaveEnabled reports whether RequestSave would currently succeed.
func (e *RosterEditor) SaveEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing && e.state != StateCommitted {
		return false
	}
	if roster.Validate(e.edited) != nil {
		return false
	}
	return !roster.Diff(e.baseline, e.edited).IsEmpty()
}

func (e *RosterEditor) LastNotification() (Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Notification{}, false
	}
	return *e.last, true
}

// beginEdit must hold mu. Saving still accepts edits on the working copy.
func (e *RosterEditor) beginEdit() error {
	switch e.state {
	case StateConfirmPending:
		return ErrConfirmationPending
	case StateStale:
		return ErrStaleSession
	case StateCommitted:
		e.state = StateEditing
	}
	return nil
}
