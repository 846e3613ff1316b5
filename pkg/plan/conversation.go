package plan

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ozten/speck/pkg/ports"
	"github.com/ozten/speck/pkg/spec"
)

const (
	analyzeModel      = "claude-sonnet-4-20250514"
	applyUpdateTokens = 2048
	addTaskTokens     = 1024
)

// PushbackQuestion is a question the planner needs answered before it can
// proceed with a given task spec.
type PushbackQuestion struct {
	TaskID      string
	Description string
	Options     []string
}

// UserAction is what the user chose to do in response to a conversation
// turn.
type UserAction interface {
	userAction()
}

// PickOption selects one of the turn's offered options, 1-indexed.
type PickOption struct{ Index int }

func (PickOption) userAction() {}

// Feedback is free-form text describing what should change.
type Feedback struct{ Text string }

func (Feedback) userAction() {}

// AddTask asks the planner to create a new foundational task spec.
type AddTask struct{ Title string }

func (AddTask) userAction() {}

// Accept finalizes the current specs and ends the loop.
type Accept struct{}

func (Accept) userAction() {}

// Stop ends the loop without finalizing.
type Stop struct{}

func (Stop) userAction() {}

// ConversationTurn is the outcome of one round of analysis.
type ConversationTurn struct {
	Message   string
	Questions []PushbackQuestion
	Specs     []*spec.TaskSpec
}

// ConversationLoop drives the interactive pushback loop: each iteration
// re-analyzes the current specs via the LLM, presents any open questions
// to reader/writer, and applies whatever the user decides until no
// questions remain or the user stops.
type ConversationLoop struct {
	specs  []*spec.TaskSpec
	reader *bufio.Reader
	writer io.Writer
	llm    ports.LLM
}

// NewConversationLoop creates a loop seeded with the given specs.
func NewConversationLoop(specs []*spec.TaskSpec, reader io.Reader, writer io.Writer, llm ports.LLM) *ConversationLoop {
	return &ConversationLoop{specs: specs, reader: bufio.NewReader(reader), writer: writer, llm: llm}
}

// Run executes the loop until an analysis turn raises no questions or the
// user accepts or stops, returning the (possibly updated) specs.
func (c *ConversationLoop) Run(ctx context.Context) ([]*spec.TaskSpec, error) {
	for {
		turn, err := c.analyzeSpecs(ctx)
		if err != nil {
			return nil, err
		}

		if err := c.presentTurn(turn); err != nil {
			return nil, err
		}

		if len(turn.Questions) == 0 {
			fmt.Fprintln(c.writer, "\nAll task specs have verification strategies. Done.")
			break
		}

		action, err := c.readUserInput()
		if err != nil {
			return nil, err
		}

		switch a := action.(type) {
		case Accept:
			fmt.Fprintln(c.writer, "\nAccepting current specs.")
			return c.specs, nil
		case Stop:
			fmt.Fprintln(c.writer, "\nStopping. Specs are not finalized.")
			return c.specs, nil
		case PickOption:
			if err := c.applyOption(ctx, turn.Questions, a.Index); err != nil {
				return nil, err
			}
		case Feedback:
			if err := c.applyFeedback(ctx, turn.Questions, a.Text); err != nil {
				return nil, err
			}
		case AddTask:
			if err := c.addFoundationalTask(ctx, a.Title); err != nil {
				return nil, err
			}
		}
	}

	return c.specs, nil
}

func (c *ConversationLoop) analyzeSpecs(ctx context.Context) (ConversationTurn, error) {
	prompt := buildAnalysisPrompt(c.specs)
	req := ports.CompletionRequest{Model: analyzeModel, Prompt: prompt, MaxTokens: 4096}

	resp, err := c.llm.Complete(ctx, req)
	if err != nil {
		return ConversationTurn{}, fmt.Errorf("LLM analysis failed: %w", err)
	}

	return parseAnalysisResponse(resp.Text, c.specs)
}

func (c *ConversationLoop) presentTurn(turn ConversationTurn) error {
	fmt.Fprintf(c.writer, "\n%s\n", turn.Message)

	for i, q := range turn.Questions {
		fmt.Fprintf(c.writer, "\n--- Question %d (task %s) ---\n", i+1, q.TaskID)
		fmt.Fprintln(c.writer, q.Description)
		for j, opt := range q.Options {
			label := rune('a' + j)
			fmt.Fprintf(c.writer, "  %c) %s\n", label, opt)
		}
	}

	fmt.Fprint(c.writer, "\n> ")
	return nil
}

func (c *ConversationLoop) readUserInput() (UserAction, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return parseUserInput(strings.TrimSpace(line)), nil
}

func (c *ConversationLoop) applyOption(ctx context.Context, questions []PushbackQuestion, optionIdx int) error {
	var b strings.Builder
	label := rune('a' + optionIdx - 1)
	fmt.Fprintf(&b, "The user chose option '%c' for the following questions:\n\n", label)

	for _, q := range questions {
		fmt.Fprintf(&b, "Task %s: %s\n", q.TaskID, q.Description)
		if optionIdx-1 < len(q.Options) {
			fmt.Fprintf(&b, "Chosen: %s\n", q.Options[optionIdx-1])
		}
	}

	writeCurrentSpecs(&b, c.specs)
	b.WriteString(updatePromptSuffix)

	req := ports.CompletionRequest{Model: analyzeModel, Prompt: b.String(), MaxTokens: applyUpdateTokens}
	resp, err := c.llm.Complete(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM update failed: %w", err)
	}

	return c.applyLLMUpdates(resp.Text)
}

func (c *ConversationLoop) applyFeedback(ctx context.Context, questions []PushbackQuestion, feedback string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "The user provided feedback:\n\"%s\"\n\n", feedback)
	b.WriteString("Open questions:\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "- Task %s: %s\n", q.TaskID, q.Description)
	}

	writeCurrentSpecs(&b, c.specs)
	b.WriteString(updatePromptSuffix)

	req := ports.CompletionRequest{Model: analyzeModel, Prompt: b.String(), MaxTokens: applyUpdateTokens}
	resp, err := c.llm.Complete(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM feedback failed: %w", err)
	}

	return c.applyLLMUpdates(resp.Text)
}

func (c *ConversationLoop) addFoundationalTask(ctx context.Context, title string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a new foundational task spec for: \"%s\"\n\nExisting tasks:\n", title)
	for _, s := range c.specs {
		fmt.Fprintf(&b, "- %s (%s)\n", s.ID, s.Title)
	}
	b.WriteString("\nRespond with JSON: {\"id\": \"TASK-N\", \"title\": \"...\", " +
		"\"signal_type\": \"clear\", \"acceptance_criteria\": [\"...\"], \"verification\": \"resolved\"}")

	req := ports.CompletionRequest{Model: analyzeModel, Prompt: b.String(), MaxTokens: addTaskTokens}
	resp, err := c.llm.Complete(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM add-task failed: %w", err)
	}

	return c.applyNewTask(resp.Text)
}

const updatePromptSuffix = "\nUpdate the task specs based on the above. " +
	"Respond with JSON: {\"updates\": [{\"task_id\": \"...\", \"title\": \"...\", " +
	"\"signal_type\": \"clear|fuzzy|internal_logic\", \"verification\": \"resolved\"}], " +
	"\"new_tasks\": [{\"id\": \"...\", \"title\": \"...\"}]}"

func writeCurrentSpecs(b *strings.Builder, specs []*spec.TaskSpec) {
	b.WriteString("\nCurrent specs:\n")
	for _, s := range specs {
		fmt.Fprintf(b, "- %s (%s): %s\n", s.ID, s.Title, s.SignalType)
	}
}

type taskUpdateJSON struct {
	TaskID     string  `json:"task_id"`
	Title      *string `json:"title"`
	SignalType *string `json:"signal_type"`
}

type newTaskJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type updatesResponse struct {
	Updates  []taskUpdateJSON `json:"updates"`
	NewTasks []newTaskJSON    `json:"new_tasks"`
}

func (c *ConversationLoop) applyLLMUpdates(response string) error {
	var parsed updatesResponse
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return fmt.Errorf("parse LLM updates: %w", err)
	}

	for _, update := range parsed.Updates {
		for _, s := range c.specs {
			if s.ID != update.TaskID {
				continue
			}
			if update.Title != nil {
				s.Title = *update.Title
			}
			if update.SignalType != nil {
				if st, ok := parseSignalType(*update.SignalType); ok {
					s.SignalType = st
				}
			}
		}
	}

	for _, nt := range parsed.NewTasks {
		c.specs = append(c.specs, &spec.TaskSpec{
			ID:                 nt.ID,
			Title:              nt.Title,
			AcceptanceCriteria: []string{},
			SignalType:         spec.SignalClear,
			Verification:       spec.DirectAssertionStrategy{},
		})
	}

	return nil
}

type newTaskResponse struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	SignalType         *string  `json:"signal_type"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

func (c *ConversationLoop) applyNewTask(response string) error {
	var parsed newTaskResponse
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return fmt.Errorf("parse new task: %w", err)
	}

	signalType := spec.SignalClear
	if parsed.SignalType != nil {
		if st, ok := parseSignalType(*parsed.SignalType); ok {
			signalType = st
		}
	}

	c.specs = append(c.specs, &spec.TaskSpec{
		ID:                 parsed.ID,
		Title:              parsed.Title,
		AcceptanceCriteria: parsed.AcceptanceCriteria,
		SignalType:         signalType,
		Verification:       spec.DirectAssertionStrategy{},
	})
	return nil
}

func parseSignalType(s string) (spec.SignalType, bool) {
	switch s {
	case "clear":
		return spec.SignalClear, true
	case "fuzzy":
		return spec.SignalFuzzy, true
	case "internal_logic":
		return spec.SignalInternalLogic, true
	default:
		return "", false
	}
}

// parseUserInput parses a line of user input into a UserAction.
func parseUserInput(input string) UserAction {
	lower := strings.ToLower(input)
	switch lower {
	case "accept", "done", "yes":
		return Accept{}
	case "stop", "quit", "exit", "no":
		return Stop{}
	}

	cleaned := strings.TrimSpace(strings.TrimPrefix(lower, "option "))
	if len(cleaned) == 1 && cleaned[0] >= 'a' && cleaned[0] <= 'z' {
		return PickOption{Index: int(cleaned[0]-'a') + 1}
	}

	if title, ok := strings.CutPrefix(lower, "add task:"); ok {
		if t := strings.TrimSpace(title); t != "" {
			return AddTask{Title: t}
		}
	}
	if title, ok := strings.CutPrefix(input, "add task:"); ok {
		if t := strings.TrimSpace(title); t != "" {
			return AddTask{Title: t}
		}
	}

	return Feedback{Text: input}
}

// buildAnalysisPrompt asks the LLM to find specs lacking a verification
// strategy or with ambiguous acceptance criteria.
func buildAnalysisPrompt(specs []*spec.TaskSpec) string {
	var b strings.Builder
	b.WriteString("Analyze these task specs and identify any that lack proper verification strategies " +
		"or have ambiguous requirements.\n\n")

	b.WriteString("## Task Specs\n\n")
	for _, s := range specs {
		fmt.Fprintf(&b, "### %s — %s\n", s.ID, s.Title)
		if s.Requirement != nil {
			fmt.Fprintf(&b, "Requirement: %s\n", *s.Requirement)
		}
		fmt.Fprintf(&b, "Signal type: %s\n", s.SignalType)
		b.WriteString("Acceptance criteria:\n")
		for _, ac := range s.AcceptanceCriteria {
			fmt.Fprintf(&b, "  - %s\n", ac)
		}
		fmt.Fprintf(&b, "Verification: %T\n\n", s.Verification)
	}

	b.WriteString("## Instructions\n\n")
	b.WriteString("Respond with JSON (no markdown fences):\n")
	b.WriteString("{\n  \"summary\": \"Brief overview of findings\",\n  \"questions\": [\n    " +
		"{\n      \"task_id\": \"TASK-ID\",\n      \"description\": \"What's unclear or unverifiable\",\n      " +
		"\"options\": [\"option a description\", \"option b description\"]\n    }\n  ]\n}\n\n")
	b.WriteString("- If all specs have clear verification strategies, return an empty questions array.\n")
	b.WriteString("- Each question should offer 2-3 concrete options.\n")
	b.WriteString("- Focus on verification strategy gaps and ambiguous acceptance criteria.\n")

	return b.String()
}

type analysisResponseJSON struct {
	Summary   string             `json:"summary"`
	Questions []questionResponse `json:"questions"`
}

type questionResponse struct {
	TaskID      string   `json:"task_id"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

func parseAnalysisResponse(response string, specs []*spec.TaskSpec) (ConversationTurn, error) {
	var parsed analysisResponseJSON
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return ConversationTurn{}, fmt.Errorf("failed to parse LLM analysis response: %w", err)
	}

	questions := make([]PushbackQuestion, len(parsed.Questions))
	for i, q := range parsed.Questions {
		questions[i] = PushbackQuestion{TaskID: q.TaskID, Description: q.Description, Options: q.Options}
	}

	return ConversationTurn{Message: parsed.Summary, Questions: questions, Specs: specs}, nil
}
