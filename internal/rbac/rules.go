package rbac

// Default policy for the Eco Academy roles. Coordinators run a school's
// green team: they report waste and manage events; teachers additionally own
// quizzes and rosters.
var RolePermissions = map[string][]string{
	"student": {
		"records:view",
		"trends:view",
		"leaderboard:view",
		"events:view",
		"feed:view",
		"feed:post",
		"quiz:view",
		"attempt:create",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
		"user:change_password",
	},
	"coordinator": {
		"records:*",
		"trends:view",
		"leaderboard:view",
		"events:*",
		"feed:view",
		"feed:post",
		"user:change_password",
	},
	"teacher": {
		"records:submit",
		"records:view",
		"trends:view",
		"leaderboard:view",
		"events:view",
		"events:create",
		"feed:view",
		"feed:post",
		"quiz:*",
		"attempt:view-all",
		"users:bulk_upsert",
		"users:list",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
