package domain

// Person is a host/guest credit from the feed's podcast namespace.
type Person struct {
	Name  string
	Role  string
	Group string
	Href  string
	Img   string
}

// ChaptersRef points at an external chapters document.
type ChaptersRef struct {
	URL  string `yaml:"url"`
	Type string `yaml:"type"`
}

// Transcript points at an external transcript document.
type Transcript struct {
	URL      string `yaml:"url"`
	Type     string `yaml:"type"`
	Language string `yaml:"language,omitempty"`
	Rel      string `yaml:"rel,omitempty"`
}

// Value is a value-for-value payment split declared by the feed.
type Value struct {
	Type       string           `yaml:"type"`
	Method     string           `yaml:"method"`
	Suggested  string           `yaml:"suggested,omitempty"`
	Recipients []ValueRecipient `yaml:"recipients"`
	TimeSplits []ValueTimeSplit `yaml:"timesplits,omitempty"`
}

type ValueRecipient struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Address     string `yaml:"address"`
	CustomKey   string `yaml:"customKey,omitempty"`
	CustomValue string `yaml:"customValue,omitempty"`
	Split       int    `yaml:"split"`
	Fee         *bool  `yaml:"fee,omitempty"`
}

type ValueTimeSplit struct {
	StartTime        int              `yaml:"startTime"`
	Duration         int              `yaml:"duration"`
	RemotePercentage int              `yaml:"remotePercentage"`
	RemoteStartTime  *int             `yaml:"remoteStartTime,omitempty"`
	RemoteItem       *RemoteItem      `yaml:"remoteItem"`
	Recipients       []ValueRecipient `yaml:"recipients,omitempty"`
}

// RemoteItem references an item in another feed, used inside value time splits.
type RemoteItem struct {
	FeedGUID string `yaml:"feedGuid"`
	FeedURL  string `yaml:"feedUrl,omitempty"`
	ItemGUID string `yaml:"itemGuid,omitempty"`
	Medium   string `yaml:"medium,omitempty"`
}
