package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.HealthResponse"}}
                }
            }
        },
        "/campaigns": {
            "get": {
                "tags": ["campaigns"],
                "summary": "List campaigns",
                "description": "Without a status filter only approved campaigns are returned",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Campaign status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Campaign"}}}
                }
            },
            "post": {
                "tags": ["campaigns"],
                "summary": "Submit a campaign for review",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Title", "name": "campaignTitle", "in": "formData"},
                    {"type": "string", "description": "Funding goal", "name": "fundingGoal", "in": "formData"},
                    {"type": "string", "description": "Duration in days", "name": "campaignDuration", "in": "formData"},
                    {"type": "file", "description": "Cover image", "name": "campaignImage", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Campaign"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/campaigns/{id}": {
            "get": {
                "tags": ["campaigns"],
                "summary": "Get campaign by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Campaign ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Campaign"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/campaigns/{id}/donations": {
            "get": {
                "tags": ["donations"],
                "summary": "List a campaign's donations",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Campaign ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Donation"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            },
            "post": {
                "tags": ["donations"],
                "summary": "Donate to a campaign",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Campaign ID", "name": "id", "in": "path", "required": true},
                    {"description": "Donation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.DonationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.DonationResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a member account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Account details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.MessageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Member login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["admin"],
                "summary": "Admin login with username, password and access code",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Admin credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/admin/campaigns": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "List campaigns in every status",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Campaign"}}}
                }
            }
        },
        "/admin/campaigns/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Approve or reject a campaign",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Campaign ID", "name": "id", "in": "path", "required": true},
                    {"description": "Decision", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.ReviewCampaignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.ReviewCampaignResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/admin/pending-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Number of campaigns awaiting review",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.PendingCountResponse"}}
                }
            }
        },
        "/admin/settings": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Update review settings",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Settings", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Settings"}}
                }
            }
        },
        "/kyc": {
            "post": {
                "tags": ["kyc"],
                "summary": "Submit identity verification",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "12 digit Aadhaar number", "name": "aadhaarNumber", "in": "formData"},
                    {"type": "string", "description": "Full name", "name": "fullName", "in": "formData"},
                    {"type": "string", "description": "10 character PAN", "name": "panNumber", "in": "formData"},
                    {"type": "file", "description": "Aadhaar front", "name": "aadhaarFront", "in": "formData"},
                    {"type": "file", "description": "Aadhaar back", "name": "aadhaarBack", "in": "formData"},
                    {"type": "file", "description": "PAN card photo", "name": "panPhoto", "in": "formData"},
                    {"type": "file", "description": "Selfie", "name": "selfie", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.KYCResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["contact"],
                "summary": "Leave a contact message",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.ContactRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.Campaign": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "additionalImages": {"type": "array", "items": {"type": "string"}},
                "goal": {"type": "integer"},
                "raised": {"type": "integer"},
                "backers": {"type": "integer"},
                "daysLeft": {"type": "integer"},
                "badge": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "createdAt": {"type": "string"},
                "reviewedAt": {"type": "string"},
                "rejectionReason": {"type": "string"},
                "location": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "entities.Donation": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "campaignId": {"type": "integer"},
                "amount": {"type": "integer"},
                "donorName": {"type": "string"},
                "donorEmail": {"type": "string"},
                "createdAt": {"type": "string"},
                "status": {"type": "string", "enum": ["completed"]}
            }
        },
        "entities.Settings": {
            "type": "object",
            "properties": {
                "autoApprovalThreshold": {"type": "integer"},
                "reviewTime": {"type": "integer"}
            }
        },
        "ports.AdminLoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "ports.ContactRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ports.DonationRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "donorName": {"type": "string"},
                "donorEmail": {"type": "string"}
            }
        },
        "ports.DonationResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "donation": {"$ref": "#/definitions/entities.Donation"},
                "campaign": {"$ref": "#/definitions/entities.Campaign"}
            }
        },
        "ports.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "ports.KYCResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "status": {"type": "string"}
            }
        },
        "ports.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ports.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "ports.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "ports.PendingCountResponse": {
            "type": "object",
            "properties": {
                "pendingCount": {"type": "integer"}
            }
        },
        "ports.RegisterRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ports.RegisterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"}
            }
        },
        "ports.ReviewCampaignRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["approved", "rejected"]},
                "reason": {"type": "string"}
            }
        },
        "ports.ReviewCampaignResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "campaign": {"$ref": "#/definitions/entities.Campaign"}
            }
        },
        "ports.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "ports.UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "autoApprovalThreshold": {"type": "integer"},
                "reviewTime": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the token from /admin/login"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "GreenFund API",
	Description:      "Crowdfunding campaigns, donations and review backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
