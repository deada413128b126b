package enum

type MemberRole string

const (
	MemberRoleMember MemberRole = "member"
	MemberRoleAdmin  MemberRole = "admin"
)

func (r MemberRole) Valid() bool {
	return r == MemberRoleMember || r == MemberRoleAdmin
}
