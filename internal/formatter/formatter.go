// package formatter provides functions to export wishlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"cinetrack/internal/tasks"
)

// ExportToCSV converts an ExportResult to CSV format with columns: ID, Title, Original Title, Release Date, Rating, Votes, Genre IDs
func ExportToCSV(export *tasks.ExportResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Original Title", "Release Date", "Rating", "Votes", "Genre IDs"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		record := []string{
			strconv.FormatInt(movie.ID, 10),
			movie.Title,
			movie.OriginalTitle,
			movie.ReleaseDate,
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
			strconv.FormatInt(movie.VoteCount, 10),
			joinGenreIDs(movie.GenreIDs),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an ExportResult to Markdown format with optional poster image
func ExportToMarkdown(export *tasks.ExportResult, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Wishlist: %s\n\n", export.UserEmail))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Movies**: %d\n", len(export.Movies)))
	if export.FailedCount > 0 {
		buf.WriteString(fmt.Sprintf("**Unresolved**: %d\n", export.FailedCount))
	}
	buf.WriteString("\n## Movies\n\n")

	for i, movie := range export.Movies {
		yearPart := ""
		if movie.ReleaseDate != "" {
			yearPart = fmt.Sprintf(" (%s)", movie.ReleaseDate)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s - ★ %.1f\n", i+1, movie.Title, yearPart, movie.VoteAverage))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an ExportResult to plain text format
func ExportToText(export *tasks.ExportResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Wishlist: %s\n", export.UserEmail))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(export.Movies)))

	for i, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title, movie.ReleaseDate))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return data, nil
}

// WriteExport renders the export in the requested format ("csv", "md" or
// "txt") and writes it to path.
func WriteExport(export *tasks.ExportResult, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(export)
	case "md", "markdown":
		data, err = ExportToMarkdown(export, "")
	case "txt", "text":
		data, err = ExportToText(export)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

func joinGenreIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, " ")
}
