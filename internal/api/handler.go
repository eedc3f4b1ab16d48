package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nidolabs/nido/internal/db"
	"github.com/nidolabs/nido/internal/mail"
	"github.com/nidolabs/nido/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName       = "nido_auth"
	contextUserKey       = "current_user"
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	mailer       *mail.Mailer

	repositories *db.Repositories
	sessions     *services.SessionManager

	authService         *services.AuthService
	familyService       *services.FamilyService
	invitationService   *services.InvitationService
	activityService     *services.ActivityService
	statsService        *services.StatsService
	memoryService       *services.MemoryService
	scheduleService     *services.ScheduleService
	messageService      *services.MessageService
	soundService        *services.SoundService
	subscriptionService *services.SubscriptionService
	deletionWorkflow    *services.ProfileDeletionWorkflow

	statsMu     sync.Mutex
	statsCaches map[uint]*services.SessionStatsCache

	loginLimiter *attemptLimiter
	resetLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, mailer *mail.Mailer) *Handler {
	repositories := db.NewRepositories(database)
	registry := services.NewProfileRegistry(repositories.Profiles, repositories.Memberships)

	return &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		mailer:       mailer,
		repositories: repositories,
		sessions:     services.NewSessionManager(registry, repositories.Profiles),

		authService:         services.NewAuthService(repositories.Users),
		familyService:       services.NewFamilyService(repositories.Memberships),
		invitationService:   services.NewInvitationService(repositories.Invitations, repositories.Memberships),
		activityService:     services.NewActivityService(repositories.Activities),
		statsService:        services.NewStatsService(repositories.Activities),
		memoryService:       services.NewMemoryService(repositories.Memories),
		scheduleService:     services.NewScheduleService(repositories.Schedules),
		messageService:      services.NewMessageService(repositories.Messages),
		soundService:        services.NewSoundService(repositories.Sounds),
		subscriptionService: services.NewSubscriptionService(repositories.Users),
		deletionWorkflow:    services.NewProfileDeletionWorkflow(db.NewDeletionStore(repositories)),

		statsCaches:  make(map[uint]*services.SessionStatsCache),
		loginLimiter: newAttemptLimiter(),
		resetLimiter: newAttemptLimiter(),
	}
}

// statsCacheFor lazily creates the per-user summary cache, wired to that
// user's profile-change events so a switch drops the cached day summaries.
func (handler *Handler) statsCacheFor(userID uint, session *services.ProfileSession) *services.SessionStatsCache {
	handler.statsMu.Lock()
	defer handler.statsMu.Unlock()

	cache, ok := handler.statsCaches[userID]
	if !ok {
		cache = services.NewSessionStatsCache(session.Bus())
		handler.statsCaches[userID] = cache
	}
	return cache
}

func (handler *Handler) dropStatsCache(userID uint) {
	handler.statsMu.Lock()
	defer handler.statsMu.Unlock()
	delete(handler.statsCaches, userID)
}
