package binding

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// Standard condition names pre-registered in every Registry.
const (
	// CondTargetIsBackground is true when the event's hit-test found
	// nothing but background.
	CondTargetIsBackground = "target-is-background"

	// CondTargetIsObject is true when the event's hit-test found an
	// object.
	CondTargetIsObject = "target-is-object"

	// CondHasActiveSelection is true when the selection collaborator
	// reports an active selection.
	CondHasActiveSelection = "has-active-selection"
)

// SelectionQuery is the read-only selection collaborator consulted by
// selection-dependent conditions.
type SelectionQuery interface {
	// HasActiveSelection reports whether anything is selected.
	HasActiveSelection() bool

	// CurrentSelection returns the selected object IDs.
	CurrentSelection() []string
}

// Env is the environment a condition predicate evaluates against.
type Env struct {
	// Event is the event being resolved.
	Event raw.Event

	// Selection is the selection collaborator; may be nil.
	Selection SelectionQuery

	// Vars holds free-form context variables set by the application.
	Vars map[string]string
}

// ConditionFunc is a named predicate over an evaluation environment.
type ConditionFunc func(Env) bool

// Evaluator evaluates a condition expression against an environment.
type Evaluator interface {
	Evaluate(expr string, env Env) bool
}

// Registry holds named condition predicates and evaluates expressions
// combining them with !, && and ||. Unknown names evaluate false and are
// logged once per dispatch, never panicking on the hot path.
type Registry struct {
	mu         sync.RWMutex
	conditions map[string]ConditionFunc
	logger     zerolog.Logger
}

// NewRegistry creates a registry with the standard predicates installed.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		conditions: make(map[string]ConditionFunc),
		logger:     logger,
	}

	r.conditions[CondTargetIsBackground] = func(env Env) bool {
		return env.Event.IsBackground()
	}
	r.conditions[CondTargetIsObject] = func(env Env) bool {
		return !env.Event.IsBackground()
	}
	r.conditions[CondHasActiveSelection] = func(env Env) bool {
		return env.Selection != nil && env.Selection.HasActiveSelection()
	}

	return r
}

// Register adds a custom predicate under its own name.
func (r *Registry) Register(name string, fn ConditionFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilCondition
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conditions[name]; exists {
		return ErrDuplicateCondition
	}
	r.conditions[name] = fn
	return nil
}

// Replace installs a predicate, overwriting any existing registration.
func (r *Registry) Replace(name string, fn ConditionFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilCondition
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[name] = fn
	return nil
}

// Names returns every registered condition name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.conditions))
	for name := range r.conditions {
		names = append(names, name)
	}
	return names
}

// Evaluate evaluates a condition expression. Supported forms: a bare
// condition name, !expr, expr && expr, expr || expr. Empty expressions are
// true; unknown names are false.
func (r *Registry) Evaluate(expr string, env Env) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}
	return r.evaluateExpr(expr, env)
}

// evaluateExpr recursively evaluates the operators in precedence order:
// || binds loosest, then &&, then !.
func (r *Registry) evaluateExpr(expr string, env Env) bool {
	if left, right, ok := splitOperator(expr, "||"); ok {
		return r.evaluateExpr(left, env) || r.evaluateExpr(right, env)
	}
	if left, right, ok := splitOperator(expr, "&&"); ok {
		return r.evaluateExpr(left, env) && r.evaluateExpr(right, env)
	}

	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "!") {
		return !r.evaluateExpr(expr[1:], env)
	}

	r.mu.RLock()
	fn, ok := r.conditions[expr]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug().Str("condition", expr).Msg("unknown condition, evaluating false")
		return false
	}
	return fn(env)
}

// splitOperator splits expr at the first occurrence of op outside leading
// and trailing whitespace.
func splitOperator(expr, op string) (left, right string, ok bool) {
	idx := strings.Index(expr, op)
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(expr[:idx]), strings.TrimSpace(expr[idx+len(op):]), true
}
