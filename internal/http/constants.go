package httpx

// Cookie names used by the auth handlers and snapshot middleware.
const (
	sessionCookieName     = "session_id"
	oauthStateCookieName  = "oauth_state"
	oauthNonceCookieName  = "oauth_nonce"
	postLoginRedirectName = "post_login_redirect"
)

// CurrentPage constants identify pages in templates and navigation.
const (
	PageLogin    = "login"
	PageHome     = "home"
	PageAbout    = "about"
	PageContent  = "content" // config-driven informational pages
	PageDocument = "document"
	PageNew      = "new"
	PageNotFound = "not-found"
	PageLoading  = "loading"
)

// Template names rendered for each page.
const (
	templateLogin    = "login"
	templateHome     = "home"
	templateAbout    = "about"
	templatePage     = "page"
	templateDocument = "document"
	templateNew      = "new"
	templateNotFound = "notfound"
	templateLoading  = "loading"
)

// maxHomeDocuments caps the document list on the home view.
const maxHomeDocuments = 50
