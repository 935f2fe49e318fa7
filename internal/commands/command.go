package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeClose   Type = "close"
	TypeShow    Type = "show"
	TypeBonus   Type = "bonus"
	TypeExport  Type = "export"
	TypeProject Type = "project"
)

// Actions of the project command.
const (
	ProjectActionAdd    = "add"
	ProjectActionStage  = "stage"
	ProjectActionDelete = "del"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	ProjectID int
	Name      string
	Start     time.Time
	End       time.Time
	Bonus     int
}

type CloseArgs struct {
	TaskID int
}

type ShowArgs struct {
	Screen string
}

type BonusArgs struct {
	TaskID int
	Bonus  int
}

type ExportArgs struct {
	Path string
}

// ProjectArgs carries one project mutation. Stage stays raw text here;
// the handler resolves it against the pipeline stages so this package
// needs no knowledge of the stage list.
type ProjectArgs struct {
	Action    string
	ProjectID int
	Name      string
	Stage     string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Close   *CloseArgs
	Show    *ShowArgs
	Bonus   *BonusArgs
	Export  *ExportArgs
	Project *ProjectArgs
}

const argDateLayout = "2006-01-02"

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeClose:
		return parseClose(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeBonus:
		return parseBonus(input, args)
	case TypeExport:
		return parseExport(input, args)
	case TypeProject:
		return parseProject(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd handles: add <project-id> <name...> start:<date> end:<date> [bonus:<n>]
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a project id and a task name"}
	}
	projectID, err := strconv.Atoi(args[0])
	if err != nil || projectID < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid project id: %s", args[0])}
	}

	parsed := AddArgs{ProjectID: projectID}
	var nameParts []string
	for _, arg := range args[1:] {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "start:"):
			t, err := time.Parse(argDateLayout, arg[len("start:"):])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid start date: %s", arg)}
			}
			parsed.Start = t
		case strings.HasPrefix(lower, "end:"):
			t, err := time.Parse(argDateLayout, arg[len("end:"):])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid end date: %s", arg)}
			}
			parsed.End = t
		case strings.HasPrefix(lower, "bonus:"):
			b, err := strconv.Atoi(arg[len("bonus:"):])
			if err != nil || b < 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid bonus: %s", arg)}
			}
			parsed.Bonus = b
		default:
			nameParts = append(nameParts, arg)
		}
	}
	parsed.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	if parsed.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}
	if parsed.Start.IsZero() || parsed.End.IsZero() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires start: and end: dates"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &parsed}, nil
}

func parseClose(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "close requires a task id"}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	return Command{Type: TypeClose, Raw: raw, Close: &CloseArgs{TaskID: id}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a screen name"}
	}
	screen := strings.ToLower(args[0])
	switch screen {
	case "board", "timeline", "priority":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown screen: %s", screen)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Screen: screen}}, nil
}

func parseBonus(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "bonus requires a task id and a level"}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	bonus, err := strconv.Atoi(args[1])
	if err != nil || bonus < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid bonus level: %s", args[1])}
	}
	return Command{Type: TypeBonus, Raw: raw, Bonus: &BonusArgs{TaskID: id, Bonus: bonus}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a file path"}
	}
	path := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Path: path}}, nil
}

// parseProject handles:
//
//	project add <name...> [stage:<stage>]
//	project stage <id> <stage>
//	project del <id>
func parseProject(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project requires an action: add, stage or del"}
	}
	action := strings.ToLower(args[0])
	rest := args[1:]

	switch action {
	case ProjectActionAdd:
		parsed := ProjectArgs{Action: ProjectActionAdd}
		var nameParts []string
		for _, arg := range rest {
			if strings.HasPrefix(strings.ToLower(arg), "stage:") {
				parsed.Stage = arg[len("stage:"):]
				continue
			}
			nameParts = append(nameParts, arg)
		}
		parsed.Name = strings.TrimSpace(strings.Join(nameParts, " "))
		if parsed.Name == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project add requires a name"}
		}
		return Command{Type: TypeProject, Raw: raw, Project: &parsed}, nil
	case ProjectActionStage:
		if len(rest) != 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project stage requires a project id and a stage"}
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil || id < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid project id: %s", rest[0])}
		}
		return Command{Type: TypeProject, Raw: raw, Project: &ProjectArgs{Action: ProjectActionStage, ProjectID: id, Stage: rest[1]}}, nil
	case ProjectActionDelete:
		if len(rest) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project del requires a project id"}
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil || id < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid project id: %s", rest[0])}
		}
		return Command{Type: TypeProject, Raw: raw, Project: &ProjectArgs{Action: ProjectActionDelete, ProjectID: id}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown project action: %s", action)}
	}
}
