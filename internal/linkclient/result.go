package linkclient

// FailureKind причина неуспешного результата.
type FailureKind int

const (
	// FailureNone результат успешный.
	FailureNone FailureKind = iota
	// FailureTransport ответ от сервера не получен (сеть, DNS, таймаут).
	FailureTransport
	// FailureStatus сервер ответил статусом, отличным от 2xx.
	FailureStatus
	// FailureDecode сервер ответил 2xx, но тело ответа не удалось разобрать.
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Done пустой маркер успешного выполнения операций, которые ничего не возвращают.
type Done struct{}

// Result результат операции клиента: либо значение, либо сообщение об ошибке для пользователя.
// Нулевое значение Result не используется, создавайте его через Ok или Err.
type Result[T any] struct {
	value   T
	message string
	kind    FailureKind
	status  int
}

// Ok создает успешный результат.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err создает неуспешный результат. Значение результата при этом - fallback (например, пустой список).
func Err[T any](fallback T, kind FailureKind, status int, message string) Result[T] {
	return Result[T]{
		value:   fallback,
		message: message,
		kind:    kind,
		status:  status,
	}
}

// OK сообщает, успешна ли операция.
func (r Result[T]) OK() bool {
	return r.kind == FailureNone
}

// Value возвращает значение результата. Для неуспешных списков это пустой список.
func (r Result[T]) Value() T {
	return r.value
}

// Message возвращает сообщение об ошибке. Для успешного результата пустая строка.
func (r Result[T]) Message() string {
	return r.message
}

// Kind возвращает причину неуспеха.
func (r Result[T]) Kind() FailureKind {
	return r.kind
}

// StatusCode возвращает HTTP статус ответа для FailureStatus, иначе 0.
func (r Result[T]) StatusCode() int {
	return r.status
}

// Unwrap позволяет использовать результат в коде, который работает с ошибками.
func (r Result[T]) Unwrap() (T, error) {
	if r.OK() {
		return r.value, nil
	}
	return r.value, &Failure{Kind: r.kind, Status: r.status, Message: r.message}
}

// Failure ошибка, в которую превращается неуспешный Result при Unwrap.
type Failure struct {
	Kind    FailureKind
	Status  int
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}
