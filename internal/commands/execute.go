package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Close   func(CloseArgs) (Result, error)
	Show    func(ShowArgs) (Result, error)
	Bonus   func(BonusArgs) (Result, error)
	Export  func(ExportArgs) (Result, error)
	Project func(ProjectArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeClose:
		if handlers.Close == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "close handler not configured"}
		}
		return handlers.Close(*cmd.Close)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeBonus:
		if handlers.Bonus == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "bonus handler not configured"}
		}
		return handlers.Bonus(*cmd.Bonus)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	case TypeProject:
		if handlers.Project == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "project handler not configured"}
		}
		return handlers.Project(*cmd.Project)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
