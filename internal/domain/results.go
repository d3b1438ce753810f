package domain

// AuthResult is the outcome of login and registration. Expected validation
// failures are carried in Error; these calls never surface an error value.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	User    *User  `json:"user,omitempty"`
}

func AuthFailure(message string) AuthResult {
	return AuthResult{Error: message}
}

func AuthSuccess(user *User) AuthResult {
	return AuthResult{Success: true, User: user}
}

// OperationResult is the outcome envelope for mutations. Error holds the
// human-readable reason on failure, Message optional feedback on success.
type OperationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func Failure(message string) OperationResult {
	return OperationResult{Error: message}
}

func Ok(message string) OperationResult {
	return OperationResult{Success: true, Message: message}
}

// Result carries the affected record alongside the outcome, e.g. the
// created category with its assigned ID.
type Result[T any] struct {
	OperationResult
	Data *T `json:"data,omitempty"`
}

func FailureOf[T any](message string) Result[T] {
	return Result[T]{OperationResult: Failure(message)}
}

func OkOf[T any](message string, data *T) Result[T] {
	return Result[T]{OperationResult: Ok(message), Data: data}
}
