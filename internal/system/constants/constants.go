package constants

const ApiBasePath = "/api/v1"
const PrivacyApiPath = "privacy"

const ConfigFilePath = "/repository/conf/deployment.yaml"
const PrivacyPolicyFilePath = "/repository/conf/privacy_policy.yaml"

type contextKey string

const UserContextKey contextKey = "user_id"

// Consent types tracked per user. Essential is always granted and immutable.
const (
	ConsentEssential      = "essential"
	ConsentAnalytics      = "analytics"
	ConsentMarketing      = "marketing"
	ConsentDataProcessing = "dataProcessing"
	ConsentThirdParty     = "thirdParty"
)

var AllowedConsentTypes = map[string]bool{
	ConsentEssential:      true,
	ConsentAnalytics:      true,
	ConsentMarketing:      true,
	ConsentDataProcessing: true,
	ConsentThirdParty:     true,
}

// Consent capture methods describe how a consent decision was recorded.
const (
	ConsentMethodRegistration    = "registration"
	ConsentMethodExplicitConsent = "explicit_consent"
	ConsentMethodSettingsUpdate  = "settings_update"
	ConsentMethodCookieBanner    = "cookie_banner"
)

var AllowedConsentMethods = map[string]bool{
	ConsentMethodRegistration:    true,
	ConsentMethodExplicitConsent: true,
	ConsentMethodSettingsUpdate:  true,
	ConsentMethodCookieBanner:    true,
}

// Consent history actions.
const (
	ConsentActionGranted   = "granted"
	ConsentActionWithdrawn = "withdrawn"
)

// DefaultPrivacyPolicyVersion is used when no policy document override is deployed.
const DefaultPrivacyPolicyVersion = "2.1"

// DeletionGracePeriodDays is the number of days between an account deletion
// request and the actual purge.
const DeletionGracePeriodDays = 30

// Privacy settings enumerations.
const (
	VisibilityPublic    = "public"
	VisibilityCommunity = "community"
	VisibilityPrivate   = "private"
)

var AllowedProfileVisibilities = map[string]bool{
	VisibilityPublic:    true,
	VisibilityCommunity: true,
	VisibilityPrivate:   true,
}

const (
	RetentionStandard = "standard"
	RetentionMinimal  = "minimal"
)

var AllowedDataRetentionModes = map[string]bool{
	RetentionStandard: true,
	RetentionMinimal:  true,
}

// Data export request statuses.
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
)
