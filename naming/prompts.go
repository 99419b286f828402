package naming

import "fmt"

const systemPrompt = "You name tables extracted from business documents. Answer with the requested names only."

func tableNamePrompt(title, content string) string {
	return fmt.Sprintf("Generate a short, concise and relevant file name (without file extension) "+
		"for a CSV file containing the following HTML table title and content:\n\n"+
		"Title: %s\n\n%s\n\nProvide only the file name.", title, content)
}

func columnNamesPrompt(count int, content string) string {
	return fmt.Sprintf("Based on the following HTML table content, generate %d descriptive and "+
		"relevant column names that would be appropriate for a CSV file:\n\n%s\n\n"+
		"Provide exactly %d column names as a comma-separated list with no additional text.",
		count, content, count)
}
