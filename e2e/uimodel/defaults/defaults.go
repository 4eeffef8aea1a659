package defaults

import "time"

// Endpoints of the application under test, relative to app.base.url
const (
	LoginURL          = "/login"
	SecureAreaURL     = "/secure"
	CheckboxesURL     = "/checkboxes"
	DropdownURL       = "/dropdown"
	FileUploadURL     = "/upload"
	DynamicLoadingURL = "/dynamic_loading"
	AddRemoveURL      = "/add_remove_elements/"
	WindowsURL        = "/windows"
	ContextMenuURL    = "/context_menu"
	FramesURL         = "/frames"
	NestedFramesURL   = "/nested_frames"
	DragAndDropURL    = "/drag_and_drop"
	HoversURL         = "/hovers"
	StatusCodesURL    = "/status_codes"
	RedirectorURL     = "/redirector"
)

// Messages shown by the application
const (
	LoginSuccessMessage    = "You logged into a secure area!"
	LogoutSuccessMessage   = "You logged out of the secure area!"
	InvalidLoginMessage    = "Your username is invalid!"
	InvalidPasswordMessage = "Your password is invalid!"
	ContextMenuAlertText   = "You selected a context menu"
)

// Demo credentials
const (
	ValidUsername   = "tomsmith"
	ValidPassword   = "SuperSecretPassword!"
	InvalidUsername = "invaliduser"
	InvalidPassword = "invalidpass"
)

const (
	// NewWindowTimeout is how long to wait for a link to open a window
	NewWindowTimeout = 10 * time.Second

	// PageJsPause lets page scripts settle after DOM changes with nothing to wait on
	PageJsPause = 500 * time.Millisecond
)
