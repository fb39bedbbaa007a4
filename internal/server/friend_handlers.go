package server

import (
	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests/:userId
// @Summary Send a friend request
// @Description Sends a request to the user. If that user already requested the caller, both become friends.
// @Tags friends
// @Produce json
// @Param userId path int true "Target user ID"
// @Success 201 {object} models.RelationshipResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{userId} [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, err := s.friendService.SendRequest(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// AcceptFriendRequest handles POST /api/friends/requests/:userId/accept
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Param userId path int true "Requester user ID"
// @Success 200 {object} models.RelationshipResult
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{userId}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requesterID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, err := s.friendService.AcceptRequest(c.UserContext(), currentUserID(c), requesterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// RejectFriendRequest handles POST /api/friends/requests/:userId/reject
// @Summary Reject a friend request
// @Description Removes the pending request from both users.
// @Tags friends
// @Produce json
// @Param userId path int true "Requester user ID"
// @Success 200 {object} models.RelationshipResult
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{userId}/reject [post]
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requesterID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, err := s.friendService.RejectRequest(c.UserContext(), currentUserID(c), requesterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetFriends handles GET /api/friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Success 200 {array} models.UserSummary
// @Security BearerAuth
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.GetFriends(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(friends)
}

// GetPendingRequests handles GET /api/friends/requests
// @Summary List received friend requests
// @Tags friends
// @Produce json
// @Success 200 {array} models.PendingRequestView
// @Security BearerAuth
// @Router /friends/requests [get]
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetPendingRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

// GetSentRequests handles GET /api/friends/requests/sent
// @Summary List sent friend requests
// @Tags friends
// @Produce json
// @Success 200 {array} models.UserSummary
// @Security BearerAuth
// @Router /friends/requests/sent [get]
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetSentRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

// GetFriendshipStatus handles GET /api/friends/status/:userId
// @Summary Relationship status with a user
// @Tags friends
// @Produce json
// @Param userId path int true "Other user ID"
// @Success 200 {object} object{status=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/status/{userId} [get]
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, err := s.friendService.GetStatus(c.UserContext(), currentUserID(c), otherID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}
