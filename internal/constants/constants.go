package constants

// ResultsQueue receives one message per finished room.
const ResultsQueue = "game.results"

// QuizCacheKeyFmt is the redis key layout for cached quiz payloads.
const QuizCacheKeyFmt = "quiz:%s:data"
