package scoring

// InterestProfile is the static instruction context for the judge. Learned
// preference directives are appended per run by the scorer.
const InterestProfile = `You are scoring articles for a daily news digest. Score each article 0-10 based on this reader's interests:

PRIMARY INTERESTS (score 8-10 if highly relevant):
- AI/ML research breakthroughs and practical applications
- Large language models, reasoning, agents, and tool use
- Software engineering best practices and architecture
- Developer tools and productivity
- Startups and tech business strategy

SECONDARY INTERESTS (score 5-7 if relevant):
- Science and mathematics
- Programming languages and systems design
- Product management and user experience
- Open source projects and community
- Tech policy and regulation

LOW INTEREST (score 0-3):
- Celebrity tech news and drama
- Routine product launches without innovation
- Pure marketing content or listicles
- Crypto/blockchain speculation
- Gaming news (unless AI-related)

Score higher for:
- Original analysis or research (not just reporting)
- Practical, actionable insights
- Novel ideas or contrarian takes
- Content from consistently high-quality sources`
