package domain

// Action is an operation subject to the access policy.
type Action string

const (
	ActionCreateOrder       Action = "order:create"
	ActionReadOwnOrders     Action = "order:read_own"
	ActionReadAnyOrder      Action = "order:read_any"
	ActionListAllOrders     Action = "order:list_all"
	ActionUpdateOrder       Action = "order:update"
	ActionUpdateOrderStatus Action = "order:update_status"
	ActionDeleteOrder       Action = "order:delete"
)

// Actions lists every action the policy knows about.
var Actions = []Action{
	ActionCreateOrder,
	ActionReadOwnOrders,
	ActionReadAnyOrder,
	ActionListAllOrders,
	ActionUpdateOrder,
	ActionUpdateOrderStatus,
	ActionDeleteOrder,
}

// staffOnly marks the actions a regular user may not perform.
// Update and delete are open to every authenticated user and do not check
// ownership.
var staffOnly = map[Action]bool{
	ActionCreateOrder:       false,
	ActionReadOwnOrders:     false,
	ActionReadAnyOrder:      true,
	ActionListAllOrders:     true,
	ActionUpdateOrder:       false,
	ActionUpdateOrderStatus: true,
	ActionDeleteOrder:       false,
}

// Allowed decides whether a user with the given staff flag may perform
// action. Unknown actions are denied.
func Allowed(isStaff bool, action Action) bool {
	restricted, known := staffOnly[action]
	if !known {
		return false
	}
	return isStaff || !restricted
}

// Authorize applies Allowed to a resolved user. A nil user means the token
// subject no longer exists.
func Authorize(u *User, action Action) error {
	if u == nil {
		return ErrUserNotFound
	}
	if !Allowed(u.IsStaff, action) {
		return ErrStaffOnly
	}
	return nil
}
