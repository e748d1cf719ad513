package github

// Asset is one artifact uploaded to a release.
// Values are decoded from the API response and never mutated.
type Asset struct {
	// Name is the filename the asset was uploaded under.
	Name string `json:"name"`
	// URL is the API endpoint for authenticated downloads.
	URL string `json:"url"`
	// BrowserDownloadURL is the public download location published in manifests.
	BrowserDownloadURL string `json:"browser_download_url"`
	// Size is the asset size in bytes.
	Size int64 `json:"size"`
	// ContentType is the MIME type recorded at upload time.
	ContentType string `json:"content_type"`
}

// Release is the subset of the release payload the generator consumes.
type Release struct {
	// TagName is the git tag the release was published under.
	TagName string `json:"tag_name"`
	// HTMLURL is the release page shown to humans.
	HTMLURL string `json:"html_url"`
	// PublishedAt is the ISO 8601 publish timestamp.
	PublishedAt string `json:"published_at"`
	// CreatedAt is the ISO 8601 creation timestamp, the fallback publish date.
	CreatedAt string `json:"created_at"`
	// Assets is the uploaded artifact list. A pointer so that a payload
	// missing the field entirely is distinguishable from an empty list.
	Assets *[]Asset `json:"assets"`
}

// PubDate returns the publish timestamp, falling back to the creation
// timestamp for draft-promoted releases.
func (r *Release) PubDate() string {
	if r.PublishedAt != "" {
		return r.PublishedAt
	}

	return r.CreatedAt
}

// AssetList returns the decoded assets, nil-safe.
func (r *Release) AssetList() []Asset {
	if r.Assets == nil {
		return nil
	}

	return *r.Assets
}
