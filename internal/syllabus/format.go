package syllabus

import (
	"fmt"
	"sort"
	"strings"
)

// FormatSummary renders the topic catalogue grouped by paper and section.
func FormatSummary(topics []Topic) string {
	if len(topics) == 0 {
		return "No syllabus topics found."
	}

	grouped := map[int]map[string][]Topic{}
	for _, topic := range topics {
		if grouped[topic.Paper] == nil {
			grouped[topic.Paper] = map[string][]Topic{}
		}
		grouped[topic.Paper][topic.Section] = append(grouped[topic.Paper][topic.Section], topic)
	}

	papers := make([]int, 0, len(grouped))
	for paper := range grouped {
		papers = append(papers, paper)
	}
	sort.Ints(papers)

	var builder strings.Builder
	for _, paper := range papers {
		fmt.Fprintf(&builder, "*Paper %d*\n", paper)
		sections := make([]string, 0, len(grouped[paper]))
		for section := range grouped[paper] {
			sections = append(sections, section)
		}
		sort.Strings(sections)
		for _, section := range sections {
			fmt.Fprintf(&builder, "_%s_\n", section)
			for _, topic := range grouped[paper][section] {
				fmt.Fprintf(&builder, "  %d. %s (%.1fh, %d marks, %s)\n",
					topic.ID, topic.Name, topic.TargetHours, topic.MarksWeight, topic.Priority)
			}
		}
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

// FormatBooks renders the deduplicated reading list across all topics.
// A topic's books column holds a semicolon-separated list.
func FormatBooks(topics []Topic) string {
	seen := map[string]bool{}
	var books []string
	for _, topic := range topics {
		for _, book := range strings.Split(topic.Books, ";") {
			book = strings.TrimSpace(book)
			if book == "" || seen[book] {
				continue
			}
			seen[book] = true
			books = append(books, book)
		}
	}
	if len(books) == 0 {
		return "No books configured."
	}
	sort.Strings(books)

	var builder strings.Builder
	builder.WriteString("*Reading list*\n")
	for _, book := range books {
		fmt.Fprintf(&builder, "- %s\n", book)
	}
	return strings.TrimRight(builder.String(), "\n")
}
