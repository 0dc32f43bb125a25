package handlers

import (
	appointmentService "visioncare/services/appointment"
	examService "visioncare/services/exam"
	patientService "visioncare/services/patient"
	referralService "visioncare/services/referral"
	userService "visioncare/services/user"
)

// HandlerBundle groups all endpoint handlers and the services they delegate
// to into one struct.
type HandlerBundle struct {
	Appointments appointmentService.AppointmentService
	Patients     patientService.PatientService
	Exams        examService.ExamService
	Referrals    referralService.ReferralService
	Users        userService.UserService
}
