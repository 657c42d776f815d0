package healthtools

import "cardiomed/internal/agent"

const (
	ToolCurrentDatetime   = "get_current_datetime"
	ToolUserProfile       = "get_user_profile"
	ToolRecentReadings    = "get_recent_bp_readings"
	ToolUpcomingReminders = "get_upcoming_bp_reminders"
	ToolClassify          = "classify_blood_pressure"
)

var (
	userIDProperty = map[string]interface{}{
		"type":        "integer",
		"description": "ID of the patient",
	}
	userSchema    = agent.ObjectSchema(map[string]interface{}{"user_id": userIDProperty}, "user_id")
	readingSchema = agent.ObjectSchema(map[string]interface{}{
		"user_id": userIDProperty,
		"limit": map[string]interface{}{
			"type":        "integer",
			"description": "Number of readings to return (default 7, max 50)",
		},
	}, "user_id")
	upcomingSchema = agent.ObjectSchema(map[string]interface{}{
		"user_id": userIDProperty,
		"hours": map[string]interface{}{
			"type":        "integer",
			"description": "Look-ahead window in hours (default 24)",
		},
	}, "user_id")
	classifySchema = agent.ObjectSchema(map[string]interface{}{
		"systolic":  map[string]interface{}{"type": "integer", "description": "Systolic pressure in mmHg"},
		"diastolic": map[string]interface{}{"type": "integer", "description": "Diastolic pressure in mmHg"},
	}, "systolic", "diastolic")
)

// DatetimeTool reports the local time of the process running the assistant
func DatetimeTool() agent.Tool {
	return agent.NewTool(ToolCurrentDatetime,
		"Get the current date and time in YYYY-MM-DD HH:MM:SS format",
		agent.ObjectSchema(nil),
		CurrentDatetime,
	)
}

// Register adds the patient-data tools to a registry
func Register(registry *agent.Registry, svc *Service) error {
	tools := []agent.Tool{
		agent.NewTool(ToolUserProfile,
			"Get the patient's profile: age, conditions, medications and blood pressure targets",
			userSchema, svc.UserProfile),
		agent.NewTool(ToolRecentReadings,
			"Get the patient's most recent blood pressure readings, newest first",
			readingSchema, svc.RecentReadings),
		agent.NewTool(ToolUpcomingReminders,
			"Get the patient's pending blood pressure check reminders",
			upcomingSchema, svc.UpcomingReminders),
		agent.NewTool(ToolClassify,
			"Classify a blood pressure reading and return the matching advice",
			classifySchema, Classify),
	}
	for _, t := range tools {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}
