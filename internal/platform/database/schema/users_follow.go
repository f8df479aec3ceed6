package schema

// UserFollowTable describes users.follow, the directed follower graph.
// The primary key (followerid, followeeid) serves the follower-tier check;
// the followee index serves follower counts.
type UserFollowTable struct {
	Table      string
	FollowerID string
	FolloweeID string
	CreatedAt  string
}

// UserFollow is users.follow.
var UserFollow = UserFollowTable{
	Table:      "users.follow",
	FollowerID: "followerid",
	FolloweeID: "followeeid",
	CreatedAt:  "createdat",
}
