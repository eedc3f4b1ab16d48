package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Profiles    *ProfileRepository
	Memberships *MembershipRepository
	Invitations *InvitationRepository
	Activities  *ActivityRepository
	Memories    *MemoryRepository
	Schedules   *ScheduleRepository
	Messages    *MessageRepository
	Sounds      *SoundRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Profiles:    NewProfileRepository(database),
		Memberships: NewMembershipRepository(database),
		Invitations: NewInvitationRepository(database),
		Activities:  NewActivityRepository(database),
		Memories:    NewMemoryRepository(database),
		Schedules:   NewScheduleRepository(database),
		Messages:    NewMessageRepository(database),
		Sounds:      NewSoundRepository(database),
	}
}
