package tool

import (
	"github.com/fpt/go-crewgen-cli/internal/catalog"
)

// DefaultCatalog builds the built-in capability catalog: every known tool
// with its short description and the credentials it needs. Tools without a
// native handle in this build get a declaration-only stub; selection only
// looks at names and credential lists either way.
func DefaultCatalog() (*catalog.Catalog, error) {
	c := catalog.New()

	records := []catalog.ToolRecord{
		{
			Name:                "serper_dev_tool",
			Description:         "Google web search via the Serper API; best for current events, news, and trends",
			RequiredCredentials: []string{"SERPER_API_KEY"},
			Handle:              NewSerperSearchHandle(),
		},
		{
			Name:                "website_search_tool",
			Description:         "Fetch a specific web page and extract its readable content",
			RequiredCredentials: nil,
			Handle:              NewWebsiteSearchHandle(),
		},
		{
			Name:                "browserbase_load_tool",
			Description:         "Load JavaScript-heavy pages through a remote Browserbase browser",
			RequiredCredentials: []string{"BROWSERBASE_API_KEY", "BROWSERBASE_PROJECT_ID"},
			Handle:              catalog.NewStubHandle("browserbase_load_tool"),
		},
		{
			Name:                "exa_search_tool",
			Description:         "Semantic web search via the Exa API",
			RequiredCredentials: []string{"EXA_API_KEY"},
			Handle:              catalog.NewStubHandle("exa_search_tool"),
		},
		{
			Name:                "firecrawl_scrape_tool",
			Description:         "Scrape and clean a website via the Firecrawl API",
			RequiredCredentials: []string{"FIRECRAWL_API_KEY"},
			Handle:              catalog.NewStubHandle("firecrawl_scrape_tool"),
		},
		{
			Name:                "github_search_tool",
			Description:         "Search code and issues on GitHub",
			RequiredCredentials: []string{"GITHUB_TOKEN"},
			Handle:              catalog.NewStubHandle("github_search_tool"),
		},
		{
			Name:                "file_read_tool",
			Description:         "Read a local file and return its contents",
			RequiredCredentials: nil,
			Handle:              catalog.NewStubHandle("file_read_tool"),
		},
		{
			Name:                "directory_read_tool",
			Description:         "List and read files from a local directory",
			RequiredCredentials: nil,
			Handle:              catalog.NewStubHandle("directory_read_tool"),
		},
		{
			Name:                "dalle_tool",
			Description:         "Generate images from text prompts via DALL-E",
			RequiredCredentials: []string{"OPENAI_API_KEY"},
			Handle:              catalog.NewStubHandle("dalle_tool"),
		},
		{
			Name:                "vision_tool",
			Description:         "Describe and analyze images",
			RequiredCredentials: []string{"OPENAI_API_KEY"},
			Handle:              catalog.NewStubHandle("vision_tool"),
		},
		{
			Name:                "qdrant_vector_search_tool",
			Description:         "Similarity search over a Qdrant vector collection",
			RequiredCredentials: []string{"QDRANT_URL", "QDRANT_API_KEY"},
			Handle:              catalog.NewStubHandle("qdrant_vector_search_tool"),
		},
		{
			Name:                "s3_reader_tool",
			Description:         "Read objects from an S3 bucket",
			RequiredCredentials: []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"},
			Handle:              catalog.NewStubHandle("s3_reader_tool"),
		},
		{
			Name:                "s3_writer_tool",
			Description:         "Write objects to an S3 bucket",
			RequiredCredentials: []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"},
			Handle:              catalog.NewStubHandle("s3_writer_tool"),
		},
		{
			Name:                "linkedin_profile_search_tool",
			Description:         "Search for LinkedIn profiles by keyword",
			RequiredCredentials: []string{"LINKEDIN_USERNAME", "LINKEDIN_PASSWORD"},
			Handle:              catalog.NewStubHandle("linkedin_profile_search_tool"),
		},
		{
			Name:                "youtube_video_search_tool",
			Description:         "Search within YouTube video content",
			RequiredCredentials: nil,
			Handle:              catalog.NewStubHandle("youtube_video_search_tool"),
		},
	}

	for _, record := range records {
		if err := c.Register(record); err != nil {
			return nil, err
		}
	}
	return c, nil
}
