package cache

import "strings"

const GlobalKeyPrefix = "docquiz"

// GenerateCacheKey builds "docquiz:<service>:<objectType>:<id>", appending params
// joined by "_" as a final segment when present.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	key := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) == 0 {
		return key
	}
	return key + ":" + strings.Join(paramsKey, "_")
}

func QuizKey(quizID string) string {
	return GenerateCacheKey("quiz", "data", quizID)
}

func DocumentKey(documentID string) string {
	return GenerateCacheKey("document", "content", documentID)
}
