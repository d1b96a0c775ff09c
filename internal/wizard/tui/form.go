package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mxsetup/mxsetup/internal/config"
	"github.com/mxsetup/mxsetup/internal/logging"
	"github.com/mxsetup/mxsetup/internal/wellknown"
)

// Field identifies one of the two URL fields on the form
type Field int

const (
	FieldHomeserver Field = iota
	FieldIdentityServer

	numFields = 2
)

// Validator resolves and verifies a homeserver/identity-server pair.
// *wellknown.Client is the production implementation; tests substitute
// their own.
type Validator interface {
	Validate(ctx context.Context, hsURL, isURL string) (*config.ServerConfig, error)
}

// fieldSettledMsg fires when a field's debounce interval elapses without
// further edits. seq identifies the timer generation; a stale seq means the
// field changed again (or was submitted) after this timer was armed.
type fieldSettledMsg struct {
	field Field
	seq   uint64
}

// validationDoneMsg carries the outcome of one validation attempt. attempt
// identifies which trigger started it; results from superseded attempts are
// discarded.
type validationDoneMsg struct {
	attempt uint64
	cfg     *config.ServerConfig
	err     error
}

// formKeyMap defines key bindings for the server form
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Quit},
	}
}

// FormModel is the server configuration form: two URL fields whose contents
// are validated asynchronously whenever a field settles, plus a submit flow
// that re-validates before confirming.
//
// Validation state obeys one invariant: while Busy is true, ErrorText is
// empty. Starting a validation clears the previous error; finishing one
// clears Busy.
type FormModel struct {
	// Inputs holds the homeserver and identity server fields, indexed by Field
	Inputs [numFields]textinput.Model

	// Focused is the field currently receiving keystrokes
	Focused Field

	// Busy is true while a validation request is in flight
	Busy bool

	// ErrorText is the user-facing message for the last failed validation,
	// empty when the last validation succeeded or one is in flight
	ErrorText string

	// Config is the last successfully validated configuration, nil when the
	// current field contents have not validated
	Config *config.ServerConfig

	// Done is true once a submit completed successfully
	Done bool

	// Debounce is how long a field must stay unchanged after losing focus
	// before it is validated. Zero validates immediately.
	Debounce time.Duration

	// Validator performs the actual server checks
	Validator Validator

	// OnConfigChange is called with every newly validated configuration,
	// including the short-circuited default. May be nil.
	OnConfigChange func(config.ServerConfig)

	// OnAfterSubmit is called once when a submit flow completes with a valid
	// configuration, before the program quits. May be nil.
	OnAfterSubmit func(config.ServerConfig)

	// timerSeq holds the current debounce-timer generation per field. Bumping
	// a field's generation invalidates any timer already in flight for it.
	timerSeq [numFields]uint64

	// attempt numbers validation triggers. A result is only applied when its
	// attempt matches; anything older was superseded by a newer trigger.
	attempt uint64

	// submitArmed is true while a submit is waiting on validation
	submitArmed bool

	// UI state
	Spinner spinner.Model
	Help    help.Model
	Keys    formKeyMap
	Width   int
	Height  int
}

// NewFormModel creates a server form pre-filled with the given configuration
func NewFormModel(initial config.ServerConfig) FormModel {
	hsInput := textinput.New()
	hsInput.Placeholder = config.DefaultHomeserverURL
	hsInput.SetValue(initial.HomeserverURL)
	hsInput.CharLimit = 250
	hsInput.Width = 60
	hsInput.Focus()
	hsInput.PromptStyle = FocusedInputStyle
	hsInput.TextStyle = FocusedInputStyle

	isInput := textinput.New()
	isInput.Placeholder = config.DefaultIdentityServerURL
	isInput.SetValue(initial.IdentityServerURL)
	isInput.CharLimit = 250
	isInput.Width = 60
	isInput.PromptStyle = BlurredInputStyle
	isInput.TextStyle = BlurredInputStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	return FormModel{
		Inputs:    [numFields]textinput.Model{hsInput, isInput},
		Focused:   FieldHomeserver,
		Validator: wellknown.NewClient(),
		Spinner:   s,
		Help:      help.New(),
		Keys:      keys,
		Width:     GetTerminalWidth(),
		Height:    24,
	}
}

// Init initializes the form
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the server form
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case fieldSettledMsg:
		// A newer edit or a submit restarted this field's timer
		if msg.seq != m.timerSeq[msg.field] {
			return m, nil
		}
		model, cmd := m.beginValidation()
		return model, cmd

	case validationDoneMsg:
		model, cmd := m.applyValidationResult(msg)
		return model, cmd
	}

	return m, nil
}

// handleKey processes keyboard input
func (m FormModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Next):
		return m.moveFocus(1)

	case key.Matches(msg, m.Keys.Prev):
		return m.moveFocus(-1)

	case key.Matches(msg, m.Keys.Submit):
		if m.Focused == FieldHomeserver {
			// Enter on the first field advances, like tab
			return m.moveFocus(1)
		}
		return m.submit()
	}

	// Text edits are ignored while a validation is in flight so the attempt
	// in progress stays bound to the values it was started with
	if m.Busy {
		return m, nil
	}

	before := m.Inputs[m.Focused].Value()
	var cmd tea.Cmd
	m.Inputs[m.Focused], cmd = m.Inputs[m.Focused].Update(msg)

	// Any change to a field invalidates its pending settle timer and the
	// current validated config
	if m.Inputs[m.Focused].Value() != before {
		m.timerSeq[m.Focused]++
		m.Config = nil
	}

	return m, cmd
}

// moveFocus shifts focus by delta fields, treating the blur of the previous
// field as a validation trigger for it.
func (m FormModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	blurred := m.Focused

	next := (int(m.Focused) + delta + numFields) % numFields
	m.Focused = Field(next)

	for i := range m.Inputs {
		if Field(i) == m.Focused {
			m.Inputs[i].Focus()
			m.Inputs[i].PromptStyle = FocusedInputStyle
			m.Inputs[i].TextStyle = FocusedInputStyle
		} else {
			m.Inputs[i].Blur()
			m.Inputs[i].PromptStyle = BlurredInputStyle
			m.Inputs[i].TextStyle = BlurredInputStyle
		}
	}

	model, cmd := m.scheduleValidation(blurred)
	return model, tea.Batch(cmd, textinput.Blink)
}

// scheduleValidation arms the settle timer for a field that just lost focus.
// With no debounce configured validation starts immediately.
func (m FormModel) scheduleValidation(field Field) (FormModel, tea.Cmd) {
	m.timerSeq[field]++
	seq := m.timerSeq[field]

	if m.Debounce <= 0 {
		return m.beginValidation()
	}

	return m, tea.Tick(m.Debounce, func(time.Time) tea.Msg {
		return fieldSettledMsg{field: field, seq: seq}
	})
}

// submit starts the confirm flow: any pending settle timers are cancelled and
// a fresh validation runs with the submit flag armed, so a success confirms
// and a failure surfaces its error like any other validation.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	for i := range m.timerSeq {
		m.timerSeq[i]++
	}
	m.submitArmed = true
	model, cmd := m.beginValidation()
	return model, cmd
}

// beginValidation starts a new validation attempt for the current field
// contents, superseding any attempt still in flight.
func (m FormModel) beginValidation() (FormModel, tea.Cmd) {
	m.attempt++
	attempt := m.attempt

	hsURL := strings.TrimSpace(m.Inputs[FieldHomeserver].Value())
	isURL := strings.TrimSpace(m.Inputs[FieldIdentityServer].Value())

	logging.LogValidationStart(attempt, hsURL, isURL)

	// Exact match against the built-in default short-circuits the network
	// entirely. Both fields must match at once.
	if config.IsDefault(hsURL, isURL) {
		cfg := config.DefaultConfig()
		return m.applyValidationResult(validationDoneMsg{attempt: attempt, cfg: &cfg})
	}

	m.Busy = true
	m.ErrorText = ""

	validator := m.Validator
	return m, tea.Batch(
		m.Spinner.Tick,
		func() tea.Msg {
			cfg, err := validator.Validate(context.Background(), hsURL, isURL)
			return validationDoneMsg{attempt: attempt, cfg: cfg, err: err}
		},
	)
}

// applyValidationResult folds a finished validation attempt into the model,
// discarding results from superseded attempts.
func (m FormModel) applyValidationResult(msg validationDoneMsg) (FormModel, tea.Cmd) {
	if msg.attempt != m.attempt {
		logging.Debug("Discarding stale validation result",
			zap.Uint64("result_attempt", msg.attempt),
			zap.Uint64("current_attempt", m.attempt),
		)
		return m, nil
	}

	m.Busy = false
	logging.LogValidationResult(msg.attempt, msg.err)

	if msg.err != nil {
		m.ErrorText = wellknown.UserMessage(msg.err)
		m.Config = nil
		m.submitArmed = false
		return m, nil
	}

	m.ErrorText = ""
	m.Config = msg.cfg

	if m.OnConfigChange != nil {
		m.OnConfigChange(*msg.cfg)
	}

	if m.submitArmed {
		m.submitArmed = false
		m.Done = true
		if m.OnAfterSubmit != nil {
			m.OnAfterSubmit(*msg.cfg)
		}
		return m, tea.Quit
	}

	return m, nil
}

// SetServerConfig replaces the form contents with an externally supplied
// configuration and validates it. When the supplied URLs already match the
// field contents this is a no-op, so feeding a confirmed config back into the
// form does not trigger a redundant validation.
func (m FormModel) SetServerConfig(cfg config.ServerConfig) (FormModel, tea.Cmd) {
	currentHS := strings.TrimSpace(m.Inputs[FieldHomeserver].Value())
	currentIS := strings.TrimSpace(m.Inputs[FieldIdentityServer].Value())

	if cfg.SameEndpoints(currentHS, currentIS) {
		return m, nil
	}

	m.Inputs[FieldHomeserver].SetValue(cfg.HomeserverURL)
	m.Inputs[FieldIdentityServer].SetValue(cfg.IdentityServerURL)

	// New contents invalidate pending timers and the old result
	for i := range m.timerSeq {
		m.timerSeq[i]++
	}
	m.Config = nil

	return m.beginValidation()
}

// View renders the server form
func (m FormModel) View() string {
	content := m.buildContent()
	helpText := m.Help.View(m.Keys)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// buildContent builds the form content
func (m FormModel) buildContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Configure your Matrix server"))
	b.WriteString("\n")

	b.WriteString(m.renderField(FieldHomeserver, "Homeserver URL"))
	b.WriteString("\n\n")
	b.WriteString(m.renderField(FieldIdentityServer, "Identity server URL (optional)"))
	b.WriteString("\n\n")

	switch {
	case m.Busy:
		b.WriteString(m.Spinner.View())
		b.WriteString(SubtitleStyle.Render(" Checking server..."))
		b.WriteString("\n")

	case m.ErrorText != "":
		b.WriteString(RenderError(m.ErrorText))
		b.WriteString("\n")

	case m.Config != nil:
		b.WriteString(RenderSuccess("Connected to " + m.Config.HomeserverName))
		b.WriteString("\n")
	}

	return b.String()
}

// renderField renders one labeled input
func (m FormModel) renderField(field Field, label string) string {
	style := FieldLabelStyle
	if m.Focused == field {
		style = FocusedFieldLabelStyle
	}
	return style.Render(label) + "\n  " + m.Inputs[field].View()
}
