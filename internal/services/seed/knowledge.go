package seed

import "github.com/anshul755/portfolio-rag/internal/models"

// KnowledgeBase returns the curated portfolio facts loaded at deployment
// time. Entry ids are fixed so re-seeding overwrites rather than duplicates.
func KnowledgeBase() []models.SeedEntry {
	return []models.SeedEntry{
		{
			ID:       "greeting-identity",
			Category: "General",
			Title:    "Greeting & AI Identity",
			Text: `If the user says 'Hello', 'Hi', 'Hey', or asks 'Who are you?', respond with:
"Hello! I am Anshul's AI Portfolio Assistant. I can tell you about his projects (like PageRank & LuxeLodge), his skills in Java & Python, or his internship experiences. What would you like to know?"
I am an AI interface for Anshul Patel's portfolio.`,
			Topics: []string{"hello", "hi", "hey", "greetings", "who are you", "identity"},
		},
		{
			ID:       "bio-contact",
			Category: "Personal",
			Title:    "Contact & Bio",
			Text: `Name: Anshul Patel.
Role: Full Stack Developer & AI Enthusiast.
Location: Ahmedabad, Gujarat, India.
Contact: anshulpatel2023@gmail.com | +91 63531 43083.
Links: LinkedIn, GitHub (anshul755).
Summary: A passionate software engineer building scalable apps, currently pursuing B.Tech in CSE.`,
			Topics: []string{"contact", "email", "location", "bio"},
		},
		{
			ID:       "education",
			Category: "Personal",
			Title:    "Education History",
			Text: `Degree: B.Tech in Computer Science and Engineering.
Institution: Institute of Technology, Nirma University (2023-2027).
Performance: Current CGPA 8.46/10.00.
Key Coursework: Data Structures & Algorithms (DSA), Object-Oriented Programming (OOP), Database Management Systems (DBMS), Machine Learning (ML), Operating Systems (OS).
High School: Purohit Science School (HSC) - 78.7%. ACPC State Rank: 529.`,
			Topics: []string{"education", "university", "cgpa", "courses"},
		},
		{
			ID:       "skills",
			Category: "Skills",
			Title:    "Technical Skills",
			Text: `Programming Languages: Java, Python, JavaScript.
Frameworks & Libraries: Spring Boot, Node.js, Express.js, React.js, Scikit-learn, XGBoost.
Web Technologies: HTML, CSS, REST APIs.
Databases: MySQL, MongoDB.
Tools & Platforms: Docker, Git, GitHub, Postman, KNIME, Jupyter.
Soft Skills: Problem Solving, Team Collaboration.`,
			Topics: []string{"skills", "java", "python", "javascript", "react", "node", "spring boot"},
		},
		{
			ID:       "achievements",
			Category: "Achievements",
			Title:    "Coding Achievements & Certifications",
			Text: `Competitive Programming:
- LeetCode: Solved 500+ questions. Max Rating: 1582.
- Codeforces: Max Rating 966.
Certifications:
- Google Developer Group Solution Challenge 2025.
- AICTE Internship on AI (TechSaksham).`,
			Topics: []string{"leetcode", "codeforces", "awards", "certifications"},
		},
		{
			ID:       "experience-internship",
			Category: "Experience",
			Title:    "AI Internship at TechSaksham",
			Text: `Role: AI Intern at TechSaksham (Microsoft & SAP Initiative).
Dates: Dec 2024 - Jan 2025 (Remote).
Key Projects during Internship:
1. Gesture-controlled music player using DeepFace, MediaPipe, and OpenCV.
2. AI-powered mood-based music recommendation system using Streamlit.
Impact: Enhanced real-time user interaction with facial and gesture recognition technologies.`,
			Topics: []string{"internship", "experience", "ai", "computervision", "microsoft"},
		},
		{
			ID:       "pagerank-overview",
			Category: "Project",
			Title:    "PageRank Visualizer - Overview",
			Text: `Project Name: Page Rank Visualizer.
Description: An interactive web app that visualizes Google's PageRank algorithm in action. It treats the web as a graph where links are votes of confidence.
Core Logic: Uses the iterative formula PR(v) = (1 - d) / N + d * Σ [ PR(u) / L(u) ] where 'd' is the damping factor (default 0.85).
Features: Users can draw graphs, add nodes/edges, adjust damping factors, and watch rank scores update in real-time.`,
			Topics: []string{"pagerank", "algorithm", "graph", "visualization"},
		},
		{
			ID:       "pagerank-tech",
			Category: "Project",
			Title:    "PageRank Visualizer - Tech Stack",
			Text: `Tech Stack for PageRank Visualizer:
Frontend: React.js, JavaScript, CSS (Deployed on Vercel).
Backend: Java, Spring Boot, Maven (Containerized with Docker).
Database: MongoDB (for storing graph states).
Architecture: REST API communication between React frontend and Spring Boot backend.`,
			Topics: []string{"java", "spring boot", "react", "docker", "maven"},
		},
		{
			ID:       "rul-overview",
			Category: "Project",
			Title:    "Predictive Maintenance (RUL) - Overview",
			Text: `Project Name: Predictive Maintenance Using Sensor Data.
Goal: Estimate the Remaining Useful Life (RUL) of turbofan engines using the NASA C-MAPSS dataset (FD001).
Approach: A machine learning regression problem to predict engine failure before it occurs using sensor data (temperature, pressure, vibration).
Pipeline: Data loading -> EDA -> Feature Engineering -> Model Training -> Evaluation.`,
			Topics: []string{"machine learning", "python", "predictive maintenance", "nasa"},
		},
		{
			ID:       "rul-results",
			Category: "Project",
			Title:    "Predictive Maintenance (RUL) - Results",
			Text: `Model Performance for RUL Prediction:
Tested Models: Linear Regression, SVR, Decision Tree, Random Forest, XGBoost.
Best Model: XGBoost Regressor.
Performance Metrics:
- RMSE (Root Mean Square Error): 19.85 (Lower is better).
- R² Score: 0.77 (Higher is better).
Key Insight: Sensor data patterns showed clear degradation trends over the engine lifecycle.`,
			Topics: []string{"xgboost", "rmse", "results", "accuracy", "data science"},
		},
		{
			ID:       "luxelodge-overview",
			Category: "Project",
			Title:    "LuxeLodge - Overview",
			Text: `Project Name: LuxeLodge.
Description: A comprehensive full-stack lodge management system.
Features:
- User Authentication: Secure login/signup using Passport.js.
- Role-Based Access: Admin control panels and user dashboards.
- Media Management: Dynamic image uploading using Cloudinary.
- Booking System: Users can list rooms, view availability, and book stays.`,
			Topics: []string{"web dev", "full stack", "management system", "booking"},
		},
		{
			ID:       "luxelodge-tech",
			Category: "Project",
			Title:    "LuxeLodge - Tech Stack",
			Text: `Tech Stack for LuxeLodge:
Backend: Node.js, Express.js.
Frontend: EJS Templating (Server-side rendering), Bootstrap, CSS.
Database: MongoDB (Mongoose ORM).
Auth & Media: Passport.js for security, Cloudinary for image storage.`,
			Topics: []string{"node.js", "express", "mongodb", "ejs", "cloudinary"},
		},
	}
}
