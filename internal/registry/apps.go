package registry

// defaultApps is the built-in catalog, in dock and launch-all order.
var defaultApps = []AppDefinition{
	{ID: "chrome", DisplayName: "Chrome", Icon: "◉", URL: "https://www.google.com", Streaming: true, HideControls: true},
	{ID: "gmail", DisplayName: "Gmail", Icon: "✉", URL: "https://mail.google.com", Streaming: true, HideControls: true},
	{ID: "notion", DisplayName: "Notion", Icon: "✎", URL: "https://www.notion.so", Streaming: true, HideControls: true},
	{ID: "instagram", DisplayName: "Instagram", Icon: "◎", URL: "https://www.instagram.com", Streaming: true, HideControls: true},
	{ID: "facebook", DisplayName: "Facebook", Icon: "ƒ", URL: "https://www.facebook.com", Streaming: true, HideControls: true},
	{ID: "salesforce", DisplayName: "Salesforce", Icon: "☁", URL: "https://login.salesforce.com", Streaming: true, HideControls: true},
	{ID: "quickbooks", DisplayName: "QuickBooks", Icon: "$", URL: "https://qbo.intuit.com", Streaming: true, HideControls: true},
	{ID: "slack", DisplayName: "Slack", Icon: "#", URL: "https://app.slack.com", Streaming: true, HideControls: true},
	{ID: "linkedin", DisplayName: "LinkedIn", Icon: "in", URL: "https://www.linkedin.com", Streaming: true, HideControls: true},
	{ID: "sheets", DisplayName: "Google Sheets", Icon: "▦", URL: "https://docs.google.com/spreadsheets", Streaming: true, HideControls: true},
	{ID: "zoom", DisplayName: "Zoom", Icon: "▶", URL: "https://zoom.us", Streaming: true, HideControls: true},
	{ID: "asana", DisplayName: "Asana", Icon: "◬", URL: "https://app.asana.com", Streaming: true, HideControls: true},
}

// DefaultPinned is the dock used on first run and whenever the stored list
// holds nothing usable.
var DefaultPinned = []string{"chrome", "gmail", "notion", "slack"}
