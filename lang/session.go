package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// ReadFileFunc resolves a namespace's backing source file to a stream,
// mirroring the teacher's ParseReader(io.Reader) convention so callers can
// hand over an *os.File, an embedded fs.File, or any other io.ReadCloser.
type ReadFileFunc func(path string) (io.ReadCloser, error)

// SessionOptions configures NewSession, matching spec.md §6's
// create_session option set one-for-one.
type SessionOptions struct {
	// Output receives one string per println call. If nil, println is not
	// installed in clojure.core at all (spec.md §4.6).
	Output func(string)
	// Entries are extra source strings evaluated at session construction,
	// after the embedded standard macro library (see stdlib.go), which
	// NewSession always loads first.
	Entries []string
	// SourceRoots are tried in order, joined with the dotted namespace
	// name (dots replaced by '/') plus ".clj", to lazily resolve a
	// namespace that isn't yet registered.
	SourceRoots []string
	// ReadFile resolves a candidate path to its contents. If nil, lazy
	// namespace resolution is disabled and an unregistered namespace
	// referenced by require is always an error.
	ReadFile ReadFileFunc
}

// NamespaceRegistry maps namespace name to its namespace-root Env, plus
// the set of namespaces whose source has finished loading (markLoaded).
// Lazy file resolution for require checks the namespaces map, so a
// registered namespace never triggers a file read; the loaded set is not
// consulted there.
type NamespaceRegistry struct {
	namespaces map[string]*Env
	loaded     map[string]struct{}
}

func newNamespaceRegistry() *NamespaceRegistry {
	return &NamespaceRegistry{
		namespaces: make(map[string]*Env),
		loaded:     make(map[string]struct{}),
	}
}

func (r *NamespaceRegistry) get(name string) (*Env, bool) {
	env, ok := r.namespaces[name]

	return env, ok
}

func (r *NamespaceRegistry) ensure(name string, outer *Env) *Env {
	if env, ok := r.namespaces[name]; ok {
		return env
	}

	env := NewNamespaceEnv(name, outer)
	r.namespaces[name] = env

	return env
}

func (r *NamespaceRegistry) isLoaded(name string) bool {
	_, ok := r.loaded[name]

	return ok
}

func (r *NamespaceRegistry) markLoaded(name string) {
	r.loaded[name] = struct{}{}
}

// Session is the interpreter's entry point: it owns the namespace
// registry, the current namespace, and the output/file-resolution hooks
// of spec.md §4.7/§6.
type Session struct {
	core      *Env
	registry  *NamespaceRegistry
	currentNS string

	output      func(string)
	sourceRoots []string
	readFile    ReadFileFunc

	cache *parseCache
}

// NewSession builds clojure.core (natives + require installed), then user
// as a child namespace, sets current_ns = "user", then loads the embedded
// standard macro library followed by each of opts.Entries in order
// (spec.md §4.7).
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	core := NewNamespaceEnv("clojure.core", nil)
	InstallCore(core, opts.Output)

	registry := newNamespaceRegistry()
	registry.namespaces["clojure.core"] = core
	registry.markLoaded("clojure.core")

	s := &Session{
		core:        core,
		registry:    registry,
		currentNS:   "user",
		output:      opts.Output,
		sourceRoots: opts.SourceRoots,
		readFile:    opts.ReadFile,
		cache:       newParseCache(),
	}

	core.Define("require", NewNativeFunction("require", s.nativeRequire))

	registry.ensure("user", core)
	registry.markLoaded("user")

	entries := append([]string{stdlibSource}, opts.Entries...)

	for _, entry := range entries {
		if _, err := s.LoadFile(ctx, entry, ""); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// CurrentNS returns the current namespace name.
func (s *Session) CurrentNS() string { return s.currentNS }

// SetNS changes the current namespace, creating it (as a child of
// clojure.core) if it does not already exist.
func (s *Session) SetNS(name string) {
	s.registry.ensure(name, s.core)
	s.currentNS = name
}

// GetNS returns the namespace-root env for name, if registered.
func (s *Session) GetNS(name string) (*Env, bool) {
	return s.registry.get(name)
}

func (s *Session) currentEnv() *Env {
	env, ok := s.registry.get(s.currentNS)
	if !ok {
		// SetNS/NewSession always register the current namespace; this is
		// unreachable in normal use.
		env = s.registry.ensure(s.currentNS, s.core)
	}

	return env
}

// LoadFile implements spec.md §4.7's load_file: tokenize+parse, extract
// the namespace target from a leading (ns ...) form (or nsHint, or
// "user"), process its :require clauses, then evaluate every form in that
// namespace's env.
func (s *Session) LoadFile(ctx context.Context, source string, nsHint string) (Value, error) {
	forms, err := s.cache.parse(source)
	if err != nil {
		return Nil, err
	}

	target := nsHint
	if target == "" {
		target = "user"
	}

	var nsForm *Value

	if len(forms) > 0 {
		if f := forms[0]; isNSForm(f) {
			name := f.Items()[1]
			target = name.Str()
			nsForm = &f
		}
	}

	env := s.registry.ensure(target, s.core)

	if nsForm != nil {
		if err := s.processNSForm(*nsForm, env); err != nil {
			return Nil, err
		}
	}

	slog.DebugContext(ctx, "loading namespace", slog.String("namespace", target))

	result, err := evalBody(forms, env)
	if err != nil {
		return Nil, escapedRecur(err)
	}

	s.registry.markLoaded(target)

	return result, nil
}

// Evaluate implements spec.md §4.7's evaluate: parse source, process any
// leading ns form's :require clauses against the *current* namespace env,
// then evaluate every form in the current env.
func (s *Session) Evaluate(ctx context.Context, source string) (Value, error) {
	forms, err := s.cache.parse(source)
	if err != nil {
		return Nil, err
	}

	slog.DebugContext(ctx, "evaluating source", slog.String("namespace", s.currentNS))

	return s.EvaluateForms(forms)
}

// EvaluateForms evaluates an already-parsed form sequence in the current
// namespace env, processing a leading ns form's :require clauses first.
func (s *Session) EvaluateForms(forms []Value) (Value, error) {
	env := s.currentEnv()

	if len(forms) > 0 && isNSForm(forms[0]) {
		if err := s.processNSForm(forms[0], env); err != nil {
			return Nil, err
		}
	}

	result, err := evalBody(forms, env)
	if err != nil {
		return Nil, escapedRecur(err)
	}

	return result, nil
}

func isNSForm(form Value) bool {
	if form.Kind != KindList {
		return false
	}

	items := form.Items()

	return len(items) >= 2 && items[0].Kind == KindSymbol && items[0].Str() == "ns" && items[1].Kind == KindSymbol
}

// processNSForm processes every (:require ...) clause of an (ns name
// clause...) form against targetEnv; any other clause keyword is rejected
// (spec.md §9 open-question resolution, DESIGN.md).
func (s *Session) processNSForm(form Value, targetEnv *Env) error {
	items := form.Items()

	for _, clause := range items[2:] {
		if clause.Kind != KindList || len(clause.Items()) == 0 {
			return evalError("malformed ns clause").WithForm(clause)
		}

		head := clause.Items()[0]
		if head.Kind != KindKeyword {
			return evalError("malformed ns clause: expected a keyword, got %s", head.Kind).WithForm(clause)
		}

		switch head.Str() {
		case ":require":
			for _, spec := range clause.Items()[1:] {
				if err := s.processRequireSpec(spec, targetEnv); err != nil {
					return err
				}
			}
		default:
			return evalError("Unknown ns clause: %s. Supported: :require", head.Str())
		}
	}

	return nil
}

// processRequireSpec implements spec.md §4.7's "Require specs": a Vector
// [ns-sym clause*] where each clause is :as alias or :refer [sym...].
func (s *Session) processRequireSpec(spec Value, targetEnv *Env) error {
	if spec.Kind != KindVector || len(spec.Items()) == 0 {
		return evalError("require spec must be a non-empty vector").WithForm(spec)
	}

	items := spec.Items()

	nsSym := items[0]
	if nsSym.Kind != KindSymbol {
		return evalError("require spec namespace must be a symbol, got %s", nsSym.Kind).WithForm(nsSym)
	}

	nsEnv, err := s.ensureNamespaceLoaded(nsSym.Str())
	if err != nil {
		return err
	}

	clauses := items[1:]

	for i := 0; i < len(clauses); i++ {
		c := clauses[i]

		if c.Kind != KindKeyword {
			return evalError("require clause must begin with a keyword, got %s", c.Kind).WithForm(c)
		}

		switch c.Str() {
		case ":as":
			i++
			if i >= len(clauses) || clauses[i].Kind != KindSymbol {
				return evalError(":as requires a following alias symbol")
			}

			targetEnv.AddAlias(clauses[i].Str(), nsEnv)
		case ":refer":
			i++
			if i >= len(clauses) || clauses[i].Kind != KindVector {
				return evalError(":refer requires a following vector of symbols")
			}

			for _, sym := range clauses[i].Items() {
				if sym.Kind != KindSymbol {
					return evalError(":refer entries must be symbols, got %s", sym.Kind).WithForm(sym)
				}

				v, err := nsEnv.Lookup(sym.Str())
				if err != nil {
					return evalError("Unable to resolve %s for :refer from %s", sym.Str(), nsSym.Str()).Wrap(err)
				}

				targetEnv.Define(sym.Str(), v)
			}
		default:
			return evalError("Unknown require option %s. Supported: :as, :refer", c.Str())
		}
	}

	return nil
}

// ensureNamespaceLoaded returns the namespace-root env for name, lazily
// loading it via ReadFile/SourceRoots if it is not yet registered (spec.md
// §4.7: "A namespace that is already loaded must not trigger file reads").
func (s *Session) ensureNamespaceLoaded(name string) (*Env, error) {
	if env, ok := s.registry.get(name); ok {
		return env, nil
	}

	if s.readFile == nil {
		return nil, evalError("namespace %s is not loaded and no file resolver is configured", name)
	}

	path := strings.ReplaceAll(name, ".", "/") + ".clj"

	for _, root := range s.sourceRoots {
		full := root + "/" + path

		content, err := s.readSource(full)
		if err != nil {
			continue
		}

		if _, err := s.LoadFile(context.Background(), content, name); err != nil {
			return nil, err
		}

		if env, ok := s.registry.get(name); ok {
			return env, nil
		}
	}

	return nil, evalError("could not resolve namespace %s in any source root", name)
}

// readSource opens path through ReadFile and drains it via an async
// readahead wrapper, grounded on the teacher's ParseReader wrapping its
// io.Reader argument in github.com/klauspost/readahead.
func (s *Session) readSource(path string) (string, error) {
	rc, err := s.readFile(path)
	if err != nil {
		return "", err
	}

	defer rc.Close()

	ra := readahead.NewReader(rc)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// nativeRequire implements the `require` native of spec.md §4.6: each
// argument is a require spec, processed against the current namespace.
func (s *Session) nativeRequire(args []Value) (Value, error) {
	env := s.currentEnv()

	for _, spec := range args {
		if err := s.processRequireSpec(spec, env); err != nil {
			return Nil, err
		}
	}

	return Nil, nil
}
