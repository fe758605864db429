package chatbot

// Schema is portable between MySQL and SQLite: ids come from snowflake and
// timestamps are written by the models, so no engine specific defaults are used.
var Schema = []string{
	"CREATE TABLE IF NOT EXISTS `sessions` (" +
		"`id` BIGINT NOT NULL PRIMARY KEY," +
		"`channel` VARCHAR(50) NOT NULL," +
		"`user_id` VARCHAR(128) NOT NULL," +
		"`state` VARCHAR(64) NOT NULL," +
		"`context` TEXT NOT NULL," +
		"`created_at` DATETIME NOT NULL," +
		"`updated_at` DATETIME NOT NULL," +
		"UNIQUE (`channel`, `user_id`))",
	"CREATE TABLE IF NOT EXISTS `leads` (" +
		"`id` BIGINT NOT NULL PRIMARY KEY," +
		"`channel` VARCHAR(50) NOT NULL," +
		"`user_id` VARCHAR(128) NOT NULL," +
		"`name` VARCHAR(128) NOT NULL," +
		"`phone` VARCHAR(64) NOT NULL," +
		"`email` VARCHAR(128) NOT NULL," +
		"`city` VARCHAR(128) NOT NULL," +
		"`notes` TEXT NOT NULL," +
		"`created_at` DATETIME NOT NULL)",
	"CREATE TABLE IF NOT EXISTS `orders` (" +
		"`id` BIGINT NOT NULL PRIMARY KEY," +
		"`channel` VARCHAR(50) NOT NULL," +
		"`user_id` VARCHAR(128) NOT NULL," +
		"`items` TEXT NOT NULL," +
		"`total_clp` BIGINT NOT NULL," +
		"`status` VARCHAR(32) NOT NULL," +
		"`created_at` DATETIME NOT NULL)",
}
