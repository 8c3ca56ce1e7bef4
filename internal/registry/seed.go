package registry

import "github.com/aanand-mishra/student-registry/internal/types"

// DefaultSeed returns the built-in example roster used on first start,
// before any list has been persisted. It is passed to New through
// Options.Seed rather than read as a package global, so tests can swap
// in their own fixtures.
//
// The function returns a fresh slice on every call; callers may mutate
// the result freely.
func DefaultSeed() []types.Student {
	return []types.Student{
		{RollNo: "S101", Name: "Pankaj Pawara", Email: "pankaj.pawara@example.com", EnrolledCourse: types.CourseReactInDepth, ProfileImage: "https://randomuser.me/api/portraits/men/1.jpg"},
		{RollNo: "S102", Name: "Anita Deshmukh", Email: "anita.deshmukh@example.com", EnrolledCourse: types.CourseJavaScriptPro, ProfileImage: "https://randomuser.me/api/portraits/women/2.jpg"},
		{RollNo: "S103", Name: "Rahul Patil", Email: "rahul.patil@example.com", EnrolledCourse: types.CourseHTMLBasics, ProfileImage: "https://randomuser.me/api/portraits/men/3.jpg"},
		{RollNo: "S104", Name: "Sneha Joshi", Email: "sneha.joshi@example.com", EnrolledCourse: types.CourseCSSMastery, ProfileImage: "https://randomuser.me/api/portraits/women/4.jpg"},
		{RollNo: "S105", Name: "Vikram Thakur", Email: "vikram.thakur@example.com", EnrolledCourse: types.CourseReactInDepth, ProfileImage: "https://randomuser.me/api/portraits/men/5.jpg"},
		{RollNo: "S106", Name: "Neha Khedekar", Email: "neha.khedekar@example.com", EnrolledCourse: types.CourseJavaScriptPro, ProfileImage: "https://randomuser.me/api/portraits/women/6.jpg"},
		{RollNo: "S107", Name: "Amit Shinde", Email: "amit.shinde@example.com", EnrolledCourse: types.CourseHTMLBasics, ProfileImage: "https://randomuser.me/api/portraits/men/7.jpg"},
		{RollNo: "S108", Name: "Priya More", Email: "priya.more@example.com", EnrolledCourse: types.CourseCSSMastery, ProfileImage: "https://randomuser.me/api/portraits/women/8.jpg"},
		{RollNo: "S109", Name: "Nikhil Wagh", Email: "nikhil.wagh@example.com", EnrolledCourse: types.CourseJavaScriptPro, ProfileImage: "https://randomuser.me/api/portraits/men/9.jpg"},
		{RollNo: "S110", Name: "Kavita Bhujbal", Email: "kavita.bhujbal@example.com", EnrolledCourse: types.CourseReactInDepth, ProfileImage: "https://randomuser.me/api/portraits/women/10.jpg"},
	}
}
