package hunt

// Kind は拒否理由の分類です。HTTP層でステータスコードに変換されます。
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidState
	KindPermissionDenied
	KindPreconditionFailed
	KindCapacityExceeded
	KindEmergencyBlocked
)

// Reject は業務ルール上の拒否を表します。Reasonはトラッカーの小型ディスプレイに
// そのまま表示されるため短い文にします。
type Reject struct {
	Kind   Kind
	Reason string
}

func (r *Reject) Error() string { return r.Reason }

func notFound(reason string) *Reject           { return &Reject{Kind: KindNotFound, Reason: reason} }
func invalidState(reason string) *Reject       { return &Reject{Kind: KindInvalidState, Reason: reason} }
func permissionDenied(reason string) *Reject   { return &Reject{Kind: KindPermissionDenied, Reason: reason} }
func preconditionFailed(reason string) *Reject { return &Reject{Kind: KindPreconditionFailed, Reason: reason} }
func capacityExceeded(reason string) *Reject   { return &Reject{Kind: KindCapacityExceeded, Reason: reason} }
func emergencyBlocked(reason string) *Reject   { return &Reject{Kind: KindEmergencyBlocked, Reason: reason} }

// RejectKind はエラーがRejectの場合その分類を返します。それ以外は0を返します。
func RejectKind(err error) Kind {
	if r, ok := err.(*Reject); ok {
		return r.Kind
	}
	return 0
}
