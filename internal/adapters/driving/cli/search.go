package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// snippetLen bounds the text shown under each result.
const snippetLen = 160

var (
	searchSkills    []string
	searchPrefer    []string
	searchExclude   []string
	searchLocations []string
	searchLevel     string
	searchMinYears  int
	searchMaxYears  int
	searchMinSalary int
	searchMaxSalary int
	searchRemote    bool
	searchHasSalary bool
	searchEducation []string
	searchBenefits  []string
	searchTopK      int
	searchNoRerank  bool
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed job postings",
	Long: `Embeds the query, gathers the closest chunks, merges them per job,
applies the filters below and reranks the survivors with the configured
cross-encoder. Without a reranker, or when it fails, results keep their
vector order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVar(&searchSkills, "skill", nil, "required skill (repeatable; all must match)")
	f.StringSliceVar(&searchPrefer, "prefer", nil, "preferred skill that boosts the score (repeatable)")
	f.StringSliceVar(&searchExclude, "exclude", nil, "drop jobs containing this keyword (repeatable)")
	f.StringSliceVarP(&searchLocations, "location", "l", nil, "acceptable location (repeatable; any may match)")
	f.StringVar(&searchLevel, "level", "", "experience level: entry, mid, senior or executive")
	f.IntVar(&searchMinYears, "min-years", -1, "minimum years of experience")
	f.IntVar(&searchMaxYears, "max-years", -1, "maximum years of experience")
	f.IntVar(&searchMinSalary, "min-salary", -1, "minimum salary")
	f.IntVar(&searchMaxSalary, "max-salary", -1, "maximum salary")
	f.BoolVar(&searchRemote, "remote", false, "remote jobs only")
	f.BoolVar(&searchHasSalary, "has-salary", false, "only jobs that state a salary")
	f.StringSliceVar(&searchEducation, "education", nil, "required education (repeatable; any may match)")
	f.StringSliceVar(&searchBenefits, "benefit", nil, "required benefit (repeatable; all must match)")
	f.IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of results (default from config)")
	f.BoolVar(&searchNoRerank, "no-rerank", false, "skip the cross-encoder")
	f.BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	resp, err := app.Search.Search(cmd.Context(), domain.SearchRequest{
		Query:         args[0],
		Criteria:      searchCriteria(),
		TopK:          searchTopK,
		DisableRerank: searchNoRerank,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}
	outputSearchTable(cmd, resp)
	return nil
}

// searchCriteria builds criteria from flags. Negative numbers mean unset.
func searchCriteria() domain.SearchFilterCriteria {
	return domain.SearchFilterCriteria{
		Locations:          searchLocations,
		RequiredSkills:     searchSkills,
		PreferredSkills:    searchPrefer,
		ExcludeKeywords:    searchExclude,
		ExperienceLevel:    domain.ExperienceLevel(strings.ToLower(searchLevel)),
		MinExperienceYears: optionalInt(searchMinYears),
		MaxExperienceYears: optionalInt(searchMaxYears),
		MinSalary:          optionalInt(searchMinSalary),
		MaxSalary:          optionalInt(searchMaxSalary),
		RemoteOnly:         searchRemote,
		HasSalaryInfo:      searchHasSalary,
		RequiredEducation:  searchEducation,
		RequiredBenefits:   searchBenefits,
	}
}

func optionalInt(v int) *int {
	if v < 0 {
		return nil
	}
	return domain.IntPtr(v)
}

func outputSearchJSON(cmd *cobra.Command, resp domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp domain.SearchResponse) {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range resp.Results {
		r := resp.Results[i]
		title := r.Metadata.Title
		if title == "" {
			title = r.ID
		}

		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, r.FinalScore)
		if line := companyLine(r.Metadata); line != "" {
			cmd.Printf("      %s\n", line)
		}
		if skills := r.Metadata.Metadata.Skills; len(skills) > 0 {
			cmd.Printf("      Skills: %s\n", strings.Join(skills, ", "))
		}
		if r.Metadata.URL != "" {
			cmd.Printf("      %s\n", r.Metadata.URL)
		}
		if snippet := snippet(r.Text); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	switch {
	case resp.Degraded:
		cmd.Println("Reranker unavailable; results are in vector order.")
	case resp.Reranked:
		cmd.Printf("%d of %d matching jobs, reranked.\n", len(resp.Results), resp.Filtered)
	default:
		cmd.Printf("%d of %d matching jobs.\n", len(resp.Results), resp.Filtered)
	}
}

func companyLine(m domain.MetadataSnapshot) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.Company, m.Location} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if m.Metadata.RemoteWork {
		parts = append(parts, "remote")
	}
	return strings.Join(parts, " · ")
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen]) + "..."
}
