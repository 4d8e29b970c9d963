package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeProject Type = "project"
	TypeFilter  Type = "filter"
	TypeSort    Type = "sort"
	TypeRefresh Type = "refresh"
	TypeLogout  Type = "logout"
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
	Title string
}

type ProjectArgs struct {
	Name string
}

// FilterArgs carries "filter status:<v> priority:<v>" tokens. Empty fields
// leave the corresponding filter untouched.
type FilterArgs struct {
	Status   string
	Priority string
	Clear    bool
}

type SortArgs struct {
	Key string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Project *ProjectArgs
	Filter  *FilterArgs
	Sort    *SortArgs
}

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
	case TypeProject:
		return parseProject(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeRefresh:
		return Command{Type: TypeRefresh, Raw: input}, nil
	case TypeLogout:
		return Command{Type: TypeLogout, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseProject(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project requires a name"}
	}
	return Command{Type: TypeProject, Raw: raw, Project: &ProjectArgs{Name: name}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires status:<v>, priority:<v> or clear"}
	}
	out := FilterArgs{}
	for _, arg := range args {
		lowered := strings.ToLower(arg)
		switch {
		case lowered == "clear":
			out.Clear = true
		case strings.HasPrefix(lowered, "status:"):
			out.Status = strings.TrimSpace(strings.TrimPrefix(lowered, "status:"))
		case strings.HasPrefix(lowered, "priority:"):
			out.Priority = strings.TrimSpace(strings.TrimPrefix(lowered, "priority:"))
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter token: %s", arg)}
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &out}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires exactly one key: due, priority or title"}
	}
	key := strings.ToLower(args[0])
	switch key {
	case "due", "priority", "title", "none":
		return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Key: key}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort key: %s", key)}
	}
}
