package service

type AdminService struct {
	roles OwnerRegistry
}

func NewAdminService(roles OwnerRegistry) *AdminService {
	return &AdminService{roles: roles}
}

func (s *AdminService) TransferOwnership(caller string, newOwner string) error {
	if !s.roles.HasRole(caller, RoleOwner) {
		return ErrUnauthorized
	}

	if !ValidUserAddress(newOwner) {
		return ErrInvalidUser
	}

	return s.roles.SetOwner(newOwner)
}
