// Package crisis provides the emergency contacts shown when a message
// looks like a crisis. The resources are for India only.
package crisis

const resourcesIndia = "\nI hear how much pain you're in, and your safety is the most important thing. " +
	"Please reach out for immediate help in India:\n" +
	"📞 **AASRA (Mumbai): +91-9820466726** (24/7)\n" +
	"📞 **Vandrevala Foundation (National): +91-9999666555** (24/7)\n" +
	"📞 **KIRAN Mental Health Rehabilitation Helpline (Govt of India): 1800-599-0019** (24/7, Toll-Free)\n" +
	"🌍 **For a wider list of helplines in India, visit:** https://www.indianpsychiatricsociety.org/helpline/\n" +
	"🚨 **In an emergency, please call your local emergency services (e.g., Police: 112 or 100, Ambulance: 102).**\n" +
	"Please know you are not alone, and help is available."

// Resources returns the crisis text. It never changes.
func Resources() string {
	return resourcesIndia
}
